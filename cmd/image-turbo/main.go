package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	imageturbo "github.com/ironsheep/image-turbo"
)

// Version information - set by ldflags during build
var (
	Version   = imageturbo.Version
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("image-turbo %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printHelp()
		return
	}

	// Results go to stdout, diagnostics to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	var err error
	switch cmd := os.Args[1]; cmd {
	case "metadata":
		err = runMetadata(os.Args[2:])
	case "resize":
		err = runResize(os.Args[2:])
	case "thumbnail":
		err = runThumbnail(os.Args[2:])
	case "smartcrop":
		err = runSmartCrop(os.Args[2:])
	case "colors":
		err = runColors(os.Args[2:])
	case "hash":
		err = runHash(os.Args[2:])
	case "blurhash":
		err = runBlurhash(os.Args[2:])
	case "thumbhash":
		err = runThumbhash(os.Args[2:])
	case "strip-exif":
		err = runStripExif(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "image-turbo: unknown command %q\n\n", cmd)
		printHelp()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printHelp() {
	fmt.Println("image-turbo - adaptive image transformation pipeline")
	fmt.Println()
	fmt.Println("Usage: image-turbo <command> [options] <file...>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  metadata     Print width/height/format/alpha for each file")
	fmt.Println("  resize       Resize an image, write PNG output")
	fmt.Println("  thumbnail    Generate thumbnails (runs files concurrently)")
	fmt.Println("  smartcrop    Content-aware crop to a size or aspect ratio")
	fmt.Println("  colors       Extract dominant colors")
	fmt.Println("  hash         Compute a perceptual hash")
	fmt.Println("  blurhash     Compute a blurhash placeholder string")
	fmt.Println("  thumbhash    Compute a thumbhash placeholder")
	fmt.Println("  strip-exif   Remove EXIF data from a JPEG or WebP file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Run 'image-turbo <command> -h' for command options.")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runMetadata(args []string) error {
	fs := flag.NewFlagSet("metadata", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("metadata: no input files")
	}
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		meta, err := imageturbo.ReadMetadata(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("%s: %dx%d %s alpha=%v\n", path, meta.Width, meta.Height, meta.Format, meta.HasAlpha)
	}
	return nil
}

func runResize(args []string) error {
	fs := flag.NewFlagSet("resize", flag.ExitOnError)
	width := fs.Int("width", 0, "target width (0 derives from height)")
	height := fs.Int("height", 0, "target height (0 derives from width)")
	filter := fs.String("filter", "", "resampling filter (lanczos, catmullrom, linear, box, nearest, mitchell)")
	fit := fs.String("fit", "", "fit mode (fill, cover, contain, inside)")
	out := fs.String("out", "", "output file (default: <name>_resized.png)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("resize: expected one input file")
	}

	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	result, err := imageturbo.Resize(data, imageturbo.ResizeOptions{
		Width:  *width,
		Height: *height,
		Filter: *filter,
		Fit:    *fit,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return writeOutput(path, *out, "_resized.png", result)
}

func runThumbnail(args []string) error {
	fs := flag.NewFlagSet("thumbnail", flag.ExitOnError)
	width := fs.Int("width", 256, "target width")
	height := fs.Int("height", 0, "target height (0 derives from aspect ratio)")
	format := fs.String("format", "", "output format (jpeg, png, webp; default maps input)")
	quality := fs.Int("quality", 0, "encoder quality 1-100 (0 uses the mode default)")
	fast := fs.Bool("fast", false, "fast mode: tolerant matching, nearest-neighbor resize")
	noShrink := fs.Bool("no-shrink", false, "disable shrink-on-load decoding")
	workers := fs.Int("workers", runtime.NumCPU(), "concurrent files")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("thumbnail: no input files")
	}

	shrink := !*noShrink
	opts := imageturbo.ThumbnailOptions{
		Width:        *width,
		Height:       *height,
		Format:       *format,
		Quality:      *quality,
		FastMode:     *fast,
		ShrinkOnLoad: &shrink,
	}

	async := imageturbo.NewAsync(*workers)
	defer async.Close()

	g, ctx := errgroup.WithContext(context.Background())
	for _, path := range fs.Args() {
		path := path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			res, err := async.Thumbnail(ctx, data, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			outPath := derivedName(path, "_thumb."+res.Format)
			if err := os.WriteFile(outPath, res.Data, 0o644); err != nil {
				return err
			}
			log.Printf("%s -> %s (%dx%d, shrink-on-load=%v)",
				path, outPath, res.Width, res.Height, res.ShrinkOnLoadUsed)
			return nil
		})
	}
	return g.Wait()
}

func runSmartCrop(args []string) error {
	fs := flag.NewFlagSet("smartcrop", flag.ExitOnError)
	width := fs.Int("width", 0, "crop width (0 uses full width)")
	height := fs.Int("height", 0, "crop height (0 uses full height)")
	aspect := fs.String("aspect", "", "aspect ratio W:H (overrides width/height)")
	analyze := fs.Bool("analyze", false, "print the crop window instead of cropping")
	out := fs.String("out", "", "output file (default: <name>_cropped.png)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("smartcrop: expected one input file")
	}

	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	opts := imageturbo.SmartCropOptions{Width: *width, Height: *height, AspectRatio: *aspect}

	if *analyze {
		res, err := imageturbo.SmartCropAnalyze(data, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return printJSON(res)
	}

	result, err := imageturbo.SmartCrop(data, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return writeOutput(path, *out, "_cropped.png", result)
}

func runColors(args []string) error {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	count := fs.Int("count", 5, "number of colors to extract")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("colors: expected one input file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	res, err := imageturbo.DominantColors(data, *count)
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}
	return printJSON(res)
}

func runHash(args []string) error {
	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	algorithm := fs.String("algorithm", "phash", "hash algorithm (phash, dhash, ahash, blockhash)")
	size := fs.Int("size", 8, "hash grid size (8, 16, 32)")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("hash: no input files")
	}

	opts := imageturbo.HashOptions{Algorithm: *algorithm, Size: *size}
	hashes := make([]string, 0, fs.NArg())
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		res, err := imageturbo.ImageHash(data, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("%s: %s\n", path, res.Hash)
		hashes = append(hashes, res.Hash)
	}

	// With exactly two inputs, also report how similar they are.
	if len(hashes) == 2 {
		dist, err := imageturbo.ImageHashDistance(hashes[0], hashes[1])
		if err != nil {
			return err
		}
		fmt.Printf("distance: %d\n", dist)
	}
	return nil
}

func runBlurhash(args []string) error {
	fs := flag.NewFlagSet("blurhash", flag.ExitOnError)
	cx := fs.Int("x", 4, "horizontal components (1-9)")
	cy := fs.Int("y", 3, "vertical components (1-9)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("blurhash: expected one input file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	res, err := imageturbo.Blurhash(data, imageturbo.BlurhashOptions{ComponentsX: *cx, ComponentsY: *cy})
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}
	fmt.Println(res.Hash)
	return nil
}

func runThumbhash(args []string) error {
	fs := flag.NewFlagSet("thumbhash", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("thumbhash: expected one input file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	res, err := imageturbo.Thumbhash(data)
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}
	return printJSON(res)
}

func runStripExif(args []string) error {
	fs := flag.NewFlagSet("strip-exif", flag.ExitOnError)
	out := fs.String("out", "", "output file (default: overwrite input)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("strip-exif: expected one input file")
	}

	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	result, err := imageturbo.StripExif(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	target := *out
	if target == "" {
		target = path
	}
	return os.WriteFile(target, result, 0o644)
}

func writeOutput(inPath, outPath, suffix string, data []byte) error {
	if outPath == "" {
		outPath = derivedName(inPath, suffix)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	log.Printf("%s -> %s (%d bytes)", inPath, outPath, len(data))
	return nil
}

func derivedName(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix
}
