package fontmul

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/remeh/sizedwaitgroup"
)

const (
	ASCIIFileName = "fonts.mul"

	loadWorkers = 4
)

// ErrNoFonts is returned by LoadDir when neither fonts.mul nor any
// unifont file could be loaded.
var ErrNoFonts = errors.New("no font files found")

// FileName returns the unifont file name for index i.
func FileName(i int) string {
	if i == 0 {
		return "unifont.mul"
	}
	return fmt.Sprintf("unifont%d.mul", i)
}

// Set bundles both font families. Either part may be empty.
type Set struct {
	ASCII   *ASCIIFonts
	Unicode [UnicodeFontCount]*UnicodeFont
}

// UnicodeFont returns font i or nil when it is out of range or was not
// loaded.
func (s *Set) UnicodeFont(i int) *UnicodeFont {
	if s == nil || i < 0 || i >= UnicodeFontCount {
		return nil
	}
	return s.Unicode[i]
}

// UnicodeCount returns how many unifont files are present.
func (s *Set) UnicodeCount() int {
	n := 0
	for _, f := range s.Unicode {
		if f != nil {
			n++
		}
	}
	return n
}

// Bytes returns the total size of the loaded font data.
func (s *Set) Bytes() int {
	n := 0
	if s.ASCII != nil {
		for _, font := range s.ASCII.fonts {
			for _, c := range font {
				n += 3 + 2*len(c.Pixels)
			}
		}
	}
	for _, f := range s.Unicode {
		if f != nil {
			n += len(f.data)
		}
	}
	return n
}

// LoadOption configures LoadDir.
type LoadOption func(*loadConfig)

type loadConfig struct {
	debug *log.Logger
}

// WithDebugLog reports files that are absent from the directory to l.
func WithDebugLog(l *log.Logger) LoadOption {
	return func(c *loadConfig) { c.debug = l }
}

// LoadDir loads fonts.mul and every unifont file found in dir. Missing
// files are skipped and reported to the debug log; corrupt files are
// logged and skipped.
func LoadDir(dir string, opts ...LoadOption) (*Set, error) {
	var cfg loadConfig
	for _, o := range opts {
		o(&cfg)
	}
	set := &Set{}
	var (
		mu      sync.Mutex
		loadErr error
	)
	note := func(name string, err error) {
		if errors.Is(err, os.ErrNotExist) {
			if cfg.debug != nil {
				cfg.debug.Printf("fontmul: %s not present", name)
			}
			return
		}
		log.Printf("fontmul: %s: %v", name, err)
		mu.Lock()
		if loadErr == nil {
			loadErr = err
		}
		mu.Unlock()
	}

	swg := sizedwaitgroup.New(loadWorkers)
	swg.Add()
	go func() {
		defer swg.Done()
		f, err := LoadASCII(filepath.Join(dir, ASCIIFileName))
		if err != nil {
			note(ASCIIFileName, err)
			return
		}
		set.ASCII = f
	}()
	for i := 0; i < UnicodeFontCount; i++ {
		swg.Add()
		go func(i int) {
			defer swg.Done()
			name := FileName(i)
			f, err := LoadUnicode(filepath.Join(dir, name))
			if err != nil {
				note(name, err)
				return
			}
			set.Unicode[i] = f
		}(i)
	}
	swg.Wait()

	if set.ASCII.Count() == 0 && set.UnicodeCount() == 0 {
		if loadErr != nil {
			return nil, fmt.Errorf("%w in %s: %v", ErrNoFonts, dir, loadErr)
		}
		return nil, fmt.Errorf("%w in %s", ErrNoFonts, dir)
	}
	return set, nil
}
