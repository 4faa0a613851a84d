package display

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/duke-git/lancet/v2/slice"
)

// Control keys.
const (
	KeyClear     = "C"
	KeyBackspace = "⌫"
	KeyEquals    = "="
)

// DefaultHistorySize is used when a Pad is created with a non-positive size.
const DefaultHistorySize = 50

// ErrUnknownKey is returned by Press for keys that are not on the keypad.
var ErrUnknownKey = errors.New("unknown key")

var (
	// entryKeys start a new expression when pressed right after a result.
	entryKeys = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".", "π", "("}

	// continueKeys extend the current expression, including a shown result.
	continueKeys = []string{"+", "-", "*", "/", "%", "^", "!", ")", "×", "÷", "−"}

	functionKeys = []string{"sin", "cos", "tan", "sqrt", "√", "log", "ln"}
)

// Entry is one evaluated line.
type Entry struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

// Pad holds the state of one calculator display. It is safe for concurrent
// use, though normally a single UI owns it.
type Pad struct {
	mu          sync.Mutex
	precision   int
	historySize int
	text        string
	evaluated   bool
	value       float64 // last successful result, full precision
	hasValue    bool
	history     []Entry
}

// NewPad creates an empty pad.
func NewPad(precision, historySize int) *Pad {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	if precision < 0 {
		precision = 0
	}
	return &Pad{precision: precision, historySize: historySize}
}

// Keys lists every key Press accepts.
func Keys() []string {
	keys := make([]string, 0, len(entryKeys)+len(continueKeys)+len(functionKeys)+3)
	keys = append(keys, entryKeys...)
	keys = append(keys, continueKeys...)
	keys = append(keys, functionKeys...)
	return append(keys, KeyClear, KeyBackspace, KeyEquals)
}

// Press applies one key and returns the new display text.
func (p *Pad) Press(key string) (string, error) {
	if key == KeyEquals {
		return p.Submit(p.Display()).Result, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case key == KeyClear:
		p.reset()

	case key == KeyBackspace:
		if p.evaluated {
			p.reset()
			break
		}
		p.text = trimLast(p.text)

	case slice.Contain(entryKeys, key):
		if p.evaluated {
			p.reset()
		}
		p.text += key

	case slice.Contain(functionKeys, key):
		if p.evaluated {
			p.reset()
		}
		p.text += key + "("

	case slice.Contain(continueKeys, key):
		switch {
		case p.evaluated && p.hasValue:
			p.text = operand(p.value)
		case p.text == ErrorText:
			p.text = ""
		}
		p.evaluated = false
		p.text += key

	default:
		return p.text, ErrUnknownKey
	}

	return p.text, nil
}

// Submit evaluates expr, shows the result and records it in the history.
func (p *Pad) Submit(expr string) Entry {
	v, err := Evaluate(expr)
	entry := Entry{Expression: expr, Result: Result(v, err, p.precision)}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.text = entry.Result
	p.evaluated = true
	p.value, p.hasValue = v, err == nil
	p.history = append(p.history, entry)
	if over := len(p.history) - p.historySize; over > 0 {
		p.history = append([]Entry(nil), p.history[over:]...)
	}
	return entry
}

// Display returns the current display text.
func (p *Pad) Display() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text
}

// History returns the recorded entries, oldest first.
func (p *Pad) History() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Entry(nil), p.history...)
}

// ClearHistory drops all recorded entries.
func (p *Pad) ClearHistory() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = nil
}

func (p *Pad) reset() {
	p.text = ""
	p.evaluated = false
	p.hasValue = false
}

// operand writes v as input the evaluator accepts. Number literals carry no
// sign or exponent, so negatives become (0-x) and non-finite values are
// produced by division.
func operand(v float64) string {
	switch {
	case math.IsNaN(v):
		return "(0/0)"
	case math.IsInf(v, 1):
		return "(1/0)"
	case math.IsInf(v, -1):
		return "(0-1/0)"
	case v == 0:
		return "0"
	case v < 0:
		return "(0-" + strconv.FormatFloat(-v, 'f', -1, 64) + ")"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trimLast removes the last key's worth of text: a whole "name(" for
// function keys, otherwise one rune.
func trimLast(text string) string {
	for _, fn := range functionKeys {
		if strings.HasSuffix(text, fn+"(") {
			return strings.TrimSuffix(text, fn+"(")
		}
	}
	_, size := utf8.DecodeLastRuneInString(text)
	return text[:len(text)-size]
}
