package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/sqweek/dialog"

	"uoglyph/fontmul"
	"uoglyph/fontrender"
)

var (
	baseDir   string
	debugMode bool

	shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")
)

func main() {
	baseDir = os.Getenv("PWD")
	if baseDir == "" {
		var err error
		if baseDir, err = os.Getwd(); err != nil {
			log.Fatalf("get working directory: %v", err)
		}
	}
	loadSettings()

	flag.StringVar(&gs.DataDir, "data", gs.DataDir, "directory holding fonts.mul and unifont*.mul")
	flag.StringVar(&gs.Text, "text", gs.Text, "text to render")
	flag.IntVar(&gs.Font, "font", gs.Font, "font index")
	flag.BoolVar(&gs.Unicode, "unicode", gs.Unicode, "use the unicode font family")
	flag.BoolVar(&gs.Bold, "bold", gs.Bold, "bold")
	flag.BoolVar(&gs.Italic, "italic", gs.Italic, "italic")
	flag.BoolVar(&gs.Underline, "underline", gs.Underline, "underline")
	flag.BoolVar(&gs.Border, "border", gs.Border, "black outline")
	flag.Float64Var(&gs.Scale, "scale", gs.Scale, "draw scale")
	flag.IntVar(&gs.Hue, "hue", gs.Hue, "RGB555 text hue, 0 for none")
	flag.IntVar(&gs.Wrap, "wrap", gs.Wrap, "wrap width in pixels, 0 to fit the output")
	pngPath := flag.String("png", "", "write the rendered text to a PNG file and exit")
	preview := flag.Bool("preview", false, "print the rendered text to the terminal and exit")
	flag.BoolVar(&debugMode, "debug", false, "verbose/debug logging")
	flag.Parse()
	gs.sanitize()

	setupLogging(debugMode)
	defer closeLogs()
	defer func() {
		if r := recover(); r != nil {
			logError("panic: %v\n%s", r, debug.Stack())
		}
	}()

	dir, err := resolveDataDir()
	if err != nil {
		fatal("data directory: %v", err)
	}
	fonts, err := loadFonts(dir)
	if err != nil {
		fatal("load fonts: %v", err)
	}
	saveSettings()

	opts := []fontrender.Option{}
	if debugLogger != nil {
		opts = append(opts, fontrender.WithLogger(debugLogger))
	}

	switch {
	case *pngPath != "":
		r := fontrender.New(fonts, opts...)
		if err := writePNG(*pngPath, r, gs); err != nil {
			fatal("write png: %v", err)
		}
	case *preview:
		r := fontrender.New(fonts, opts...)
		if err := printPreview(os.Stdout, r, gs); err != nil {
			fatal("preview: %v", err)
		}
	default:
		opts = append(opts, fontrender.WithPointer(cursor{}))
		runGame(fontrender.New(fonts, opts...))
		saveSettings()
	}
}

// resolveDataDir picks the asset directory from the flags or settings and
// falls back to asking the user.
func resolveDataDir() (string, error) {
	dir := gs.DataDir
	if dir == "" {
		if _, err := os.Stat(filepath.Join(baseDir, "data", fontmul.ASCIIFileName)); err == nil {
			dir = filepath.Join(baseDir, "data")
		}
	}
	if dir == "" {
		picked, err := dialog.Directory().Title("Select the Ultima Online folder").Browse()
		if err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				return "", errors.New("no directory selected")
			}
			return "", err
		}
		dir = picked
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	gs.DataDir = dir
	return dir, nil
}

func loadFonts(dir string) (*fontmul.Set, error) {
	start := time.Now()
	var opts []fontmul.LoadOption
	if debugLogger != nil {
		opts = append(opts, fontmul.WithDebugLog(debugLogger))
	}
	fonts, err := fontmul.LoadDir(dir, opts...)
	if err != nil {
		return nil, err
	}
	logDebug("loaded %d ascii and %d unicode fonts (%s) in %s",
		fonts.ASCII.Count(), fonts.UnicodeCount(),
		humanize.Bytes(uint64(fonts.Bytes())),
		durafmt.Parse(time.Since(start)).LimitFirstN(2).Format(shortUnits))
	if gs.Unicode && fonts.UnicodeFont(gs.Font) == nil {
		return fonts, fmt.Errorf("unicode font %d not loaded", gs.Font)
	}
	return fonts, nil
}
