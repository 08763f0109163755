package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/topi314/shtrix/server/codes"
)

var ErrNoBatch = errors.New("no codes generated yet")

func New(generated []codes.Code, logo string) *Batch {
	return &Batch{
		Codes:     generated,
		Logo:      logo,
		CreatedAt: time.Now(),
	}
}

// Batch is an immutable generated sequence together with its display metadata.
type Batch struct {
	Codes     []codes.Code
	Logo      string
	CreatedAt time.Time
}

func (b *Batch) Len() int {
	return len(b.Codes)
}

func (b *Batch) First() codes.Code {
	if len(b.Codes) == 0 {
		return ""
	}
	return b.Codes[0]
}

func (b *Batch) Last() codes.Code {
	if len(b.Codes) == 0 {
		return ""
	}
	return b.Codes[len(b.Codes)-1]
}

func (b *Batch) Filename() string {
	return b.filename("txt")
}

func (b *Batch) ArchiveFilename() string {
	return b.filename("zip")
}

func (b *Batch) PrintFilename() string {
	return b.filename("html")
}

func (b *Batch) filename(ext string) string {
	return fmt.Sprintf("shtrix-codes-%s-to-%s.%s", b.First(), b.Last(), ext)
}

// Text returns the codes joined by newlines in generation order.
func (b *Batch) Text() string {
	return strings.Join(codes.Strings(b.Codes), "\n")
}

func (b *Batch) WriteText(w io.Writer) error {
	if _, err := io.WriteString(w, b.Text()); err != nil {
		return fmt.Errorf("failed to write codes: %w", err)
	}
	return nil
}

// ParseText reads a text export back into codes. Blank lines are skipped.
func ParseText(r io.Reader) ([]codes.Code, error) {
	var parsed []codes.Code

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		c, err := codes.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		parsed = append(parsed, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read codes: %w", err)
	}
	if len(parsed) == 0 {
		return nil, errors.New("no codes found")
	}
	if len(parsed) > codes.MaxQuantity {
		return nil, &codes.RangeError{Quantity: len(parsed)}
	}

	return parsed, nil
}

func NewState(logo string) *State {
	return &State{
		logo: logo,
	}
}

// State holds the current batch. A successful generation replaces it as a whole.
type State struct {
	mu      sync.RWMutex
	logo    string
	current *Batch
}

func (s *State) Generate(start string, quantity int) (*Batch, error) {
	generated, err := codes.Generate(codes.Normalize(start), quantity)
	if err != nil {
		return nil, err
	}

	b := New(generated, s.logo)
	s.Replace(b)
	return b, nil
}

func (s *State) Replace(b *Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = b
}

func (s *State) Current() (*Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// Export writes the text export of the current batch and returns its filename.
func (s *State) Export(w io.Writer) (string, error) {
	b, ok := s.Current()
	if !ok {
		return "", ErrNoBatch
	}

	if err := b.WriteText(w); err != nil {
		return "", err
	}
	return b.Filename(), nil
}
