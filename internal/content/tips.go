package content

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownCategory = errors.New("unknown tips category")
	ErrArticleNotFound = errors.New("article not found")
)

type Category struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Source      string `json:"source"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	URL         string `json:"url"`
}

// Tips holds the pro tips articles grouped into categories.
type Tips struct {
	categories []Category
	articles   []Article
}

func NewTips(categories []Category, articles []Article) (*Tips, error) {
	for _, a := range articles {
		if !slices.ContainsFunc(categories, func(c Category) bool { return c.ID == a.Category }) {
			return nil, fmt.Errorf("article %s: %w: %q", a.ID, ErrUnknownCategory, a.Category)
		}
	}
	return &Tips{
		categories: slices.Clone(categories),
		articles:   slices.Clone(articles),
	}, nil
}

// LoadTips reads the bundled pro tips.
func LoadTips() (*Tips, error) {
	var data struct {
		Categories []Category `json:"categories"`
		Articles   []Article  `json:"articles"`
	}
	if err := loadJSON("tips.json", &data); err != nil {
		return nil, err
	}
	return NewTips(data.Categories, data.Articles)
}

func (t *Tips) Categories() []Category {
	return slices.Clone(t.categories)
}

// Articles lists the articles of a category. An empty category lists all of them.
func (t *Tips) Articles(category string) ([]Article, error) {
	if category == "" {
		return slices.Clone(t.articles), nil
	}
	if !slices.ContainsFunc(t.categories, func(c Category) bool { return c.ID == category }) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	articles := []Article{}
	for _, a := range t.articles {
		if a.Category == category {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

func (t *Tips) Article(id string) (Article, error) {
	i := slices.IndexFunc(t.articles, func(a Article) bool { return a.ID == id })
	if i < 0 {
		return Article{}, ErrArticleNotFound
	}
	return t.articles[i], nil
}
