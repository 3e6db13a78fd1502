// Package predict serves single-word completions for resume form fields
// from a frequency-ranked prefix dictionary.
package predict

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// minWordLen is the shortest word worth completing to.
const minWordLen = 2

type entry struct {
	word  string
	count int
}

// Dictionary holds one trie per form field plus a global trie used when a
// field has no match. Keys are lower-cased; the first spelling seen is kept
// for display. It is safe for concurrent use.
type Dictionary struct {
	mu     sync.RWMutex
	fields map[string]*patricia.Trie
	global *patricia.Trie
	words  int
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		fields: make(map[string]*patricia.Trie),
		global: patricia.NewTrie(),
	}
}

// Tokenize splits text into words. Letters, digits and the characters
// '.', '+', '#' and '-' are word characters, so "node.js", "c++" and "c#"
// survive; trailing dots and dashes are trimmed.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '+' || r == '#' || r == '-')
	})
	out := words[:0]
	for _, w := range words {
		w = strings.TrimRight(w, ".-")
		w = strings.TrimLeft(w, ".-")
		if utf8.RuneCountInString(w) >= minWordLen {
			out = append(out, w)
		}
	}
	return out
}

// Add indexes every word of text under field.
func (d *Dictionary) Add(field, text string) {
	for _, w := range Tokenize(text) {
		d.AddWord(field, w, 1)
	}
}

// AddWord adds count occurrences of word under field.
func (d *Dictionary) AddWord(field, word string, count int) {
	word = strings.TrimSpace(word)
	if word == "" || count <= 0 {
		return
	}
	key := patricia.Prefix(strings.ToLower(word))

	d.mu.Lock()
	defer d.mu.Unlock()

	if field != "" {
		t, ok := d.fields[field]
		if !ok {
			t = patricia.NewTrie()
			d.fields[field] = t
		}
		bump(t, key, word, count)
	}
	if bump(d.global, key, word, count) {
		d.words++
	}
}

// bump increments a word's count, reporting whether the word is new.
func bump(t *patricia.Trie, key patricia.Prefix, word string, count int) bool {
	if item := t.Get(key); item != nil {
		item.(*entry).count += count
		return false
	}
	t.Insert(key, &entry{word: word, count: count})
	return true
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.words
}

// Complete returns the most frequent word that starts with prefix and is
// longer than it, looking in field first and then globally. It returns ""
// when there is none or prefix is empty.
func (d *Dictionary) Complete(field, prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	lower := strings.ToLower(prefix)

	d.mu.RLock()
	defer d.mu.RUnlock()

	var best *entry
	if t, ok := d.fields[field]; ok {
		best = bestCompletion(t, lower)
	}
	if best == nil {
		best = bestCompletion(d.global, lower)
	}
	if best == nil {
		return ""
	}
	return matchCase(prefix, best.word)
}

func bestCompletion(t *patricia.Trie, lower string) *entry {
	var best *entry
	var bestKey string
	_ = t.VisitSubtree(patricia.Prefix(lower), func(p patricia.Prefix, item patricia.Item) error {
		key := string(p)
		if key == lower {
			return nil
		}
		e := item.(*entry)
		if best == nil || outranks(e, key, best, bestKey) {
			best = e
			bestKey = key
		}
		return nil
	})
	return best
}

// outranks orders candidates by count, then shorter key, then key.
func outranks(a *entry, aKey string, b *entry, bKey string) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	if len(aKey) != len(bKey) {
		return len(aKey) < len(bKey)
	}
	return aKey < bKey
}

// matchCase adapts the stored spelling to the typed prefix: an upper-case
// prefix of two or more letters gives an upper-case word, an initial
// capital gives a capitalized word, anything else keeps the stored form.
func matchCase(prefix, word string) string {
	if utf8.RuneCountInString(prefix) > 1 && prefix == strings.ToUpper(prefix) && prefix != strings.ToLower(prefix) {
		return strings.ToUpper(word)
	}
	first, _ := utf8.DecodeRuneInString(prefix)
	if unicode.IsUpper(first) {
		w, size := utf8.DecodeRuneInString(word)
		return string(unicode.ToUpper(w)) + word[size:]
	}
	return word
}
