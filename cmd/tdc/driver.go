// Package main implements the tdc command line driver: it parses an
// algorithm configuration string, wires it to a registered compressor
// via the compressor package, and streams a file (or stdin) through it,
// optionally reporting StatPhase timings as JSON (spec.md §6).
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tudocomp-go/tdc/compressor"
	"github.com/tudocomp-go/tdc/meta"
	"github.com/tudocomp-go/tdc/rio"
	"github.com/tudocomp-go/tdc/stat"
)

const (
	exitSuccess = 0
	exitRuntime = 1
	exitUsage   = 2

	compressedFileExt = "tdc"
	maxHeaderLength   = 1024
)

type options struct {
	algorithm  string
	generator  string
	decompress bool
	raw        bool
	output     string
	useStdout  bool
	useStdin   bool
	force      bool
	stats      bool
	statsTitle string
	list       bool
	version    bool
	help       bool
	remaining  []string
}

func parseArgs(args []string, stderr io.Writer) (*options, int) {
	fs := flag.NewFlagSet("tdc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.algorithm, "algorithm", "", "algorithm configuration string")
	fs.StringVar(&o.generator, "generator", "", "string generator configuration")
	fs.BoolVar(&o.decompress, "decompress", false, "decompress the input instead of compressing it")
	fs.BoolVar(&o.raw, "raw", false, "omit/ignore the algorithm header")
	fs.StringVar(&o.output, "output", "", "output file path")
	fs.BoolVar(&o.useStdout, "usestdout", false, "write output to standard output")
	fs.BoolVar(&o.useStdin, "stdin", false, "read input from standard input")
	fs.BoolVar(&o.force, "force", false, "overwrite an existing output file")
	fs.BoolVar(&o.stats, "stats", false, "print a StatPhase JSON report to stdout")
	fs.StringVar(&o.statsTitle, "stats-title", "", "title recorded in the stats report")
	fs.BoolVar(&o.list, "list", false, "list every registered algorithm and exit")
	fs.BoolVar(&o.version, "version", false, "print the version and exit")
	fs.BoolVar(&o.help, "help", false, "print usage and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return o, exitUsage
		}
		return nil, exitUsage
	}
	o.remaining = fs.Args()
	return o, exitSuccess
}

func ternaryXor(a, b, c bool) bool {
	n := 0
	for _, v := range []bool{a, b, c} {
		if v {
			n++
		}
	}
	return n == 1
}

func badUsage(stderr io.Writer, msg string) int {
	fmt.Fprintln(stderr, "usage error:", msg)
	return exitUsage
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, code := parseArgs(args, stderr)
	if o == nil {
		return code
	}
	if o.help {
		fmt.Fprintln(stdout, "tdc: compress or decompress a file with a registered algorithm")
		return exitSuccess
	}
	if o.version {
		fmt.Fprintln(stdout, "tdc version dev")
		return exitSuccess
	}

	lib := compressor.NewLibrary()

	if o.list {
		fmt.Fprintln(stdout, "This build supports the following algorithms:")
		fmt.Fprintln(stdout)
		for _, d := range lib.Decls() {
			fmt.Fprint(stdout, d.Doc())
		}
		return exitSuccess
	}

	doCompress := !o.decompress

	if o.generator == "" && o.algorithm == "" {
		if doCompress {
			return badUsage(stderr, "missing compression algorithm")
		}
		if o.decompress && o.raw {
			return badUsage(stderr, "missing algorithm for raw decompression")
		}
	} else if o.generator != "" && o.decompress {
		return badUsage(stderr, "trying to decompress a generated string")
	}

	if !o.useStdin && o.generator == "" && len(o.remaining) == 0 {
		return badUsage(stderr, "missing generator, input file or standard input")
	}
	if !ternaryXor(o.useStdin, o.generator != "", len(o.remaining) > 0) {
		return badUsage(stderr, "trying to use multiple inputs")
	}

	var inputName, file string
	var input []byte

	switch {
	case o.useStdin:
		inputName = "<stdin>"
		buf, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return exitRuntime
		}
		input = buf
	case o.generator != "":
		// String generators (tudocomp's "String Generators" registry) are
		// not part of this build: no generator algorithm has been wired
		// into a registry the way lz78/lzw/lzss have been for compressors.
		fmt.Fprintln(stderr, "Error: string generators are not supported in this build")
		return exitRuntime
	default:
		file = o.remaining[0]
		inputName = file
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			fmt.Fprintln(stderr, "input path not found or is not a file:", file)
			return exitRuntime
		}
		buf, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return exitRuntime
		}
		input = buf
	}
	inSize := len(input)

	if o.output != "" && o.useStdout {
		return badUsage(stderr, "trying to use multiple outputs")
	}
	var ofile string
	if !o.useStdout {
		switch {
		case o.output != "":
			ofile = o.output
		case doCompress && file != "":
			ofile = file + "." + compressedFileExt
		default:
			return badUsage(stderr, "either specify a filename (--output path) or state that the output is standard output (--usestdout)")
		}
		if _, err := os.Stat(ofile); err == nil && !o.force {
			fmt.Fprintln(stderr, "output file already exists:", ofile)
			return exitRuntime
		}
	}

	root := stat.Begin("root")
	startTime := time.Now()

	var out bytes.Buffer
	var configStr string
	var err error

	if doCompress {
		configStr, err = doCompressInput(lib, o, input, &out)
	} else {
		configStr, err = doDecompressInput(lib, o, input, &out)
	}
	root.End()

	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitRuntime
	}

	var outSize int
	if o.useStdout {
		if _, werr := stdout.Write(out.Bytes()); werr != nil {
			fmt.Fprintln(stderr, "Error:", werr)
			return exitRuntime
		}
	} else {
		if werr := os.WriteFile(ofile, out.Bytes(), 0o644); werr != nil {
			fmt.Fprintln(stderr, "Error:", werr)
			return exitRuntime
		}
		if info, serr := os.Stat(ofile); serr == nil {
			outSize = int(info.Size())
		}
	}
	if o.useStdout {
		outSize = out.Len()
	}

	if o.stats {
		printStats(stdout, root, o, startTime, configStr, inputName, ofile, inSize, outSize)
	}
	return exitSuccess
}

// hasRestrictions reports whether r forbids any byte or requires a null
// terminator, i.e. whether rio.Escape/Unescape must run at all.
func hasRestrictions(r meta.InputRestrictions) bool {
	return len(r.Forbidden) > 0 || r.NulTerminate
}

// doCompressInput builds the compressor for o.algorithm, escapes input
// against its declared input restrictions (spec.md §4.B, e.g. lzss's
// required trailing sentinel), compresses it, and (unless --raw)
// prepends the normalised configuration header. It returns the
// configuration string used, for --stats.
func doCompressInput(lib *compressor.Library, o *options, input []byte, out *bytes.Buffer) (string, error) {
	cfg, err := lib.Build(o.algorithm)
	if err != nil {
		return "", err
	}
	c, err := lib.Compressors.Construct(cfg)
	if err != nil {
		return "", err
	}

	if hasRestrictions(cfg.Decl.Restrictions) {
		input = rio.Escape(input, cfg.Decl.Restrictions)
	}

	if !o.raw {
		header := cfg.Str()
		if strings.ContainsRune(header, '%') {
			return "", fmt.Errorf("algorithm header must not contain '%%': %q", header)
		}
		out.WriteString(header)
		out.WriteByte('%')
	}
	if err := c.Compress(out, input); err != nil {
		return "", err
	}
	return cfg.Str(), nil
}

// doDecompressInput peels off the header (unless --raw), resolves the
// compressor either from the header or from a manually given
// --algorithm, decompresses the remaining payload, and reverses any
// input-restriction escaping applied at compression time.
func doDecompressInput(lib *compressor.Library, o *options, input []byte, out *bytes.Buffer) (string, error) {
	payload := input
	configStr := o.algorithm

	if !o.raw {
		idx := bytes.IndexByte(input, '%')
		if idx < 0 || idx > maxHeaderLength {
			return "", fmt.Errorf("input did not have an algorithm header")
		}
		header := string(input[:idx])
		payload = input[idx+1:]
		if o.algorithm == "" {
			configStr = header
		}
	}

	cfg, err := lib.Build(configStr)
	if err != nil {
		return "", err
	}
	c, err := lib.Compressors.Construct(cfg)
	if err != nil {
		return "", err
	}
	decoded, err := c.Decompress(bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	if hasRestrictions(cfg.Decl.Restrictions) {
		decoded, err = rio.Unescape(decoded, cfg.Decl.Restrictions)
		if err != nil {
			return "", err
		}
	}
	out.Write(decoded)
	return configStr, nil
}

type statsMeta struct {
	Title      string  `json:"title"`
	StartTime  int64   `json:"startTime"`
	Config     string  `json:"config"`
	Input      string  `json:"input"`
	InputSize  int     `json:"inputSize"`
	Output     string  `json:"output"`
	OutputSize int     `json:"outputSize"`
	Rate       float64 `json:"rate"`
}

type statsReport struct {
	Meta statsMeta       `json:"meta"`
	Data json.RawMessage `json:"data"`
}

func printStats(stdout io.Writer, root *stat.Phase, o *options, startTime time.Time, configStr, inputName, ofile string, inSize, outSize int) {
	outputName := ofile
	if o.useStdout {
		outputName = "<stdout>"
	}
	config := configStr
	if config == "" {
		config = "<none>"
	}
	var rate float64
	if inSize != 0 {
		rate = float64(outSize) / float64(inSize)
	}

	data, err := root.JSON()
	if err != nil {
		data = []byte("null")
	}
	report := statsReport{
		Meta: statsMeta{
			Title:      o.statsTitle,
			StartTime:  startTime.Unix(),
			Config:     config,
			Input:      inputName,
			InputSize:  inSize,
			Output:     outputName,
			OutputSize: outSize,
			Rate:       rate,
		},
		Data: data,
	}
	b, err := json.Marshal(report)
	if err != nil {
		fmt.Fprintln(stdout, "{}")
		return
	}
	stdout.Write(b)
	fmt.Fprintln(stdout)
}
