// Package scrape implements the catalog ingestion collaborator: it walks a
// books.toscrape.com-style listing site and feeds every product pod into the
// book repository. Ingestion is duplicate-tolerant by construction, since
// the catalog store has no uniqueness key on titles.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"libris/config"
	"libris/internal/domain/entity"
	"libris/internal/domain/repository"
)

// Scraper fetches listing pages and ingests the extracted records.
type Scraper struct {
	client *http.Client
	repo   repository.BookRepository
	cfg    *config.ScraperConfig
	logger *slog.Logger
}

// New is the constructor for Scraper.
func New(cfg *config.Config, repo repository.BookRepository, logger *slog.Logger) (*Scraper, error) {
	if cfg.Scraper == nil {
		return nil, errors.New("scraper configuration is missing")
	}

	return &Scraper{
		client: http.DefaultClient,
		repo:   repo,
		cfg:    cfg.Scraper,
		logger: logger,
	}, nil
}

// Run ensures the books table exists, then scrapes and ingests every
// configured page. A failing page aborts the run; already-ingested records
// stay, matching the original collaborator's per-record commits.
func (s *Scraper) Run(ctx context.Context) error {
	if err := s.repo.Migrate(ctx); err != nil {
		return errors.Wrap(err, "failed to prepare books table")
	}

	pages := s.cfg.Pages
	if pages < 1 {
		pages = 1
	}

	for page := 1; page <= pages; page++ {
		pageURL := s.cfg.IndexURL
		if page > 1 {
			pageURL = fmt.Sprintf(s.cfg.PageURL, page)
		}

		s.logger.Info("Scraping page", slog.Int("page", page), slog.String("url", pageURL))

		if err := s.scrapePage(ctx, pageURL); err != nil {
			return errors.Wrapf(err, "failed to scrape page %d", page)
		}
	}

	return nil
}

func (s *Scraper) scrapePage(ctx context.Context, pageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to fetch page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d fetching %s", resp.StatusCode, pageURL)
	}

	books, err := ParseBooks(resp.Body)
	if err != nil {
		return err
	}

	for _, book := range books {
		if err := s.repo.Create(ctx, book); err != nil {
			return errors.Wrapf(err, "failed to ingest %q", book.Title)
		}

		s.logger.Info("Ingested book",
			slog.String("title", book.Title),
			slog.String("price", book.Price),
			slog.String("availability", book.Availability),
			slog.String("rating", book.Rating),
		)
	}

	return nil
}

// ParseBooks extracts catalog records from a listing page. Each record is an
// <article class="product_pod">: the title lives in the h3 anchor's title
// attribute, price in p.price_color, availability in the trimmed text of
// p.instock.availability, and rating as the second class of p.star-rating.
func ParseBooks(r io.Reader) ([]*entity.Book, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse page")
	}

	var books []*entity.Book
	for node := range doc.Descendants() {
		if node.Type == html.ElementNode && node.Data == "article" && hasClass(node, "product_pod") {
			books = append(books, parsePod(node))
		}
	}

	return books, nil
}

func parsePod(pod *html.Node) *entity.Book {
	book := &entity.Book{}

	for node := range pod.Descendants() {
		if node.Type != html.ElementNode {
			continue
		}

		switch node.Data {
		case "a":
			if book.Title == "" && node.Parent != nil && node.Parent.Data == "h3" {
				book.Title = attrValue(node, "title")
			}
		case "p":
			switch {
			case hasClass(node, "price_color"):
				book.Price = textContent(node)
			case hasClass(node, "instock") && hasClass(node, "availability"):
				book.Availability = strings.TrimSpace(textContent(node))
			case hasClass(node, "star-rating"):
				book.Rating = ratingClass(node)
			}
		}
	}

	return book
}

// ratingClass returns the class that is not "star-rating", i.e. the rating word.
func ratingClass(node *html.Node) string {
	for _, class := range strings.Fields(attrValue(node, "class")) {
		if class != "star-rating" {
			return class
		}
	}

	return ""
}

func hasClass(node *html.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(node, "class")) {
		if c == class {
			return true
		}
	}

	return false
}

func attrValue(node *html.Node, key string) string {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}

	return ""
}

func textContent(node *html.Node) string {
	var sb strings.Builder
	for child := range node.Descendants() {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	}

	return sb.String()
}
