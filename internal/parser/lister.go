package parser

// Lister extracts marked function names from testx files, for listing
// without expanding.
type Lister struct{}

// NewLister creates a new Lister
func NewLister() *Lister {
	return &Lister{}
}

// MarkedNames returns the names of all marked declarations in a testx file.
func (l *Lister) MarkedNames(path string) ([]string, error) {
	f, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return f.MarkedNames(), nil
}
