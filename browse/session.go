// Package browse drives the interactive category -> book selection and
// saves every visited page through the mirror package.
package browse

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookscraper/applog"
	"bookscraper/catalog"
	"bookscraper/mirror"
)

// ErrInvalidSelection is returned when the user picks an entry that doesn't exist
var ErrInvalidSelection = errors.New("invalid selection")

// State is a step of the interactive session
type State int

const (
	ShowingCategories State = iota
	ShowingBooks
	Done
)

func (s State) String() string {
	switch s {
	case ShowingCategories:
		return "ShowingCategories"
	case ShowingBooks:
		return "ShowingBooks"
	case Done:
		return "Done"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Config holds what a session needs to run
type Config struct {
	BaseURL string // site home page
	Root    string // folder pages are saved under
	Fetcher mirror.Fetcher
	In      io.Reader
	Out     io.Writer
	Open    func(url string) error // called with the chosen book URL; may be nil
	Log     *applog.Loggers
}

// Session walks home -> category -> book
type Session struct {
	cfg      *Config
	mirrorer *mirror.Mirrorer
	input    *bufio.Scanner
	log      *applog.Loggers

	categories []catalog.Link
	category   catalog.Link
	folder     string
	books      []catalog.Link
}

// New creates a Session
func New(cfg *Config) *Session {
	log := applog.OrDiscard(cfg.Log)
	return &Session{
		cfg:      cfg,
		mirrorer: mirror.NewMirrorer(cfg.Fetcher, log),
		input:    bufio.NewScanner(cfg.In),
		log:      log,
	}
}

// Run saves the home page and then loops through the menus until the
// user exits, picks a book, or an error occurs.
func (s *Session) Run(ctx context.Context) error {
	home, err := s.cfg.Fetcher.FetchText(ctx, s.cfg.BaseURL)
	if err != nil {
		return err
	}
	if _, _, err := s.mirrorer.SaveDocument(ctx, s.cfg.Root, "Index.html", home, s.cfg.BaseURL, ""); err != nil {
		return err
	}
	s.categories, err = catalog.Categories(home, s.cfg.BaseURL)
	if err != nil {
		return err
	}

	state := ShowingCategories
	for state != Done {
		s.log.Debug.Printf("state %s", state)
		switch state {
		case ShowingCategories:
			state, err = s.showCategories(ctx)
		case ShowingBooks:
			state, err = s.showBooks(ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) showCategories(ctx context.Context) (State, error) {
	fmt.Fprintln(s.cfg.Out, "Available Categories:")
	for i, c := range s.categories {
		fmt.Fprintf(s.cfg.Out, "%d. %s\n", i+1, c.Name)
	}
	fmt.Fprintln(s.cfg.Out, "\nEnter the number of the category you want to explore (Type 'exit' to quit):")

	line, ok := s.readLine()
	if !ok || strings.EqualFold(line, "exit") {
		return Done, nil
	}
	idx, err := ParseChoice(line, len(s.categories))
	if err != nil {
		return Done, fmt.Errorf("category: %w", err)
	}

	s.category = s.categories[idx]
	page, err := s.cfg.Fetcher.FetchText(ctx, s.category.URL)
	if err != nil {
		return Done, err
	}
	s.folder = catalog.CategoryFolder(s.category.URL)
	if _, _, err := s.mirrorer.SaveDocument(ctx, s.cfg.Root, "Index.html", page, s.category.URL, s.folder); err != nil {
		return Done, err
	}
	s.books, err = catalog.Books(page, s.category.URL)
	if err != nil {
		return Done, err
	}
	return ShowingBooks, nil
}

func (s *Session) showBooks(ctx context.Context) (State, error) {
	fmt.Fprintf(s.cfg.Out, "\nBooks in '%s':\n", s.category.Name)
	for i, b := range s.books {
		fmt.Fprintf(s.cfg.Out, "%d. %s\n", i+1, b.Name)
	}
	fmt.Fprintln(s.cfg.Out, "Type 'back' to go back to categories.")
	fmt.Fprint(s.cfg.Out, "Enter the number of the book you want to view: ")

	line, ok := s.readLine()
	if !ok {
		return Done, nil
	}
	if strings.EqualFold(line, "back") {
		return ShowingCategories, nil
	}
	idx, err := ParseChoice(line, len(s.books))
	if err != nil {
		return Done, fmt.Errorf("book: %w", err)
	}

	book := s.books[idx]
	page, err := s.cfg.Fetcher.FetchText(ctx, book.URL)
	if err != nil {
		return Done, err
	}
	if _, _, err := s.mirrorer.SaveDocument(ctx, s.cfg.Root, catalog.BookFileName(book.Name), page, book.URL, s.folder); err != nil {
		return Done, err
	}

	fmt.Fprintf(s.cfg.Out, "\nURL of '%s': %s\n", book.Name, book.URL)
	if s.cfg.Open != nil {
		if err := s.cfg.Open(book.URL); err != nil {
			s.log.Error.Printf("Could not open browser: %v", err)
		}
	}
	return Done, nil
}

// readLine returns the next trimmed input line; ok is false at end of input
func (s *Session) readLine() (string, bool) {
	if !s.input.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.input.Text()), true
}

// ParseChoice converts a 1-based menu selection into a 0-based index
func ParseChoice(input string, n int) (int, error) {
	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || choice < 1 || choice > n {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, input)
	}
	return choice - 1, nil
}
