package tokenize

import "sync"

// Lazy defers reading the punkt archive until the policy or tokens are first needed, so
// runs served entirely from the cache work without the tokenizer model.
type Lazy struct {
	archivePath string
	language    string

	once sync.Once
	tok  *Tokenizer
	err  error
}

// NewLazy returns a segmenter backed by the abbreviation table of lang in archivePath.
func NewLazy(archivePath, lang string) *Lazy {
	return &Lazy{archivePath: archivePath, language: normalizeLanguage(lang)}
}

func (l *Lazy) load() (*Tokenizer, error) {
	l.once.Do(func() {
		l.tok, l.err = NewFromArchive(l.archivePath, l.language)
	})
	return l.tok, l.err
}

// Policy returns the full policy when the archive is readable and BasePolicy otherwise.
func (l *Lazy) Policy() string {
	tok, err := l.load()
	if err != nil {
		return BasePolicy(l.language)
	}
	return tok.Policy()
}

// Segment tokenizes messages. A missing archive surfaces here as a
// *punkt.ResourceUnavailableError.
func (l *Lazy) Segment(messages []string) ([]string, error) {
	tok, err := l.load()
	if err != nil {
		return nil, err
	}
	return tok.Tokenize(messages), nil
}
