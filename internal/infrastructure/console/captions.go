// Package console provides the caption surface for the visualization loop:
// an interactive prompter and a replaying provider for scripted runs.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/ports"
)

// Prompter asks for a caption on the console before each render.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

var _ ports.CaptionProvider = (*Prompter)(nil)

// NewPrompter wires the input and output streams (normally stdin/stdout).
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Caption prompts for and reads a single caption line.
func (p *Prompter) Caption(_ context.Context, sub domain.Subcorpus, topic int) (string, error) {
	fmt.Fprintf(p.out, "Enter a title for %s topic %d: ", sub, topic)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read caption: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// StaticProvider replays pre-supplied captions, keyed by subcorpus and
// indexed by topic. Topics beyond the list get an empty caption.
type StaticProvider struct {
	captions map[domain.Subcorpus][]string
}

var _ ports.CaptionProvider = (*StaticProvider)(nil)

// NewStaticProvider copies the provided caption lists.
func NewStaticProvider(captions map[string][]string) *StaticProvider {
	owned := make(map[domain.Subcorpus][]string, len(captions))
	for sub, list := range captions {
		copied := make([]string, len(list))
		copy(copied, list)
		owned[domain.Subcorpus(sub)] = copied
	}
	return &StaticProvider{captions: owned}
}

// Caption returns the pre-supplied caption for the topic, if any.
func (s *StaticProvider) Caption(_ context.Context, sub domain.Subcorpus, topic int) (string, error) {
	list := s.captions[sub]
	if topic < 0 || topic >= len(list) {
		return "", nil
	}
	return list[topic], nil
}
