package shell

import (
	"errors"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// ErrInterrupt is returned by a Prompter when the user cancels the current prompt with Ctrl+C.
var ErrInterrupt = errors.New("interrupted")

// Prompter reads one line of input. completions seeds tab completion for that line only.
// io.EOF means the input is closed.
type Prompter interface {
	Prompt(prompt string, completions []string) (string, error)
}

type ReadlinePrompter struct {
	rl        *readline.Instance
	completer *wordCompleter
}

// NewReadlinePrompter opens the terminal. historyFile may be empty.
func NewReadlinePrompter(historyFile string) (*ReadlinePrompter, error) {
	completer := &wordCompleter{}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyFile,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}

	return &ReadlinePrompter{rl: rl, completer: completer}, nil
}

func (p *ReadlinePrompter) Prompt(prompt string, completions []string) (string, error) {
	p.completer.SetWords(completions)
	p.rl.SetPrompt(prompt)

	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupt
	}
	if err != nil {
		return "", err
	}

	return line, nil
}

func (p *ReadlinePrompter) Close() error {
	return p.rl.Close()
}

// wordCompleter completes the word under the cursor case-insensitively.
// Words are separated by commas or spaces so that field lists complete too.
type wordCompleter struct {
	mu    sync.Mutex
	words []string
}

func (c *wordCompleter) SetWords(words []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.words = words
}

func (c *wordCompleter) Do(line []rune, pos int) ([][]rune, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	head := string(line[:pos])
	prefix := head[strings.LastIndexAny(head, ", ")+1:]

	var candidates [][]rune
	for _, w := range c.words {
		if len(w) < len(prefix) || !strings.EqualFold(w[:len(prefix)], prefix) {
			continue
		}
		candidates = append(candidates, []rune(w[len(prefix):]))
	}

	return candidates, len([]rune(prefix))
}
