// Command rawpb prints protobuf wire format data as JSON without a schema.
//
//	rawpb [flags] [file]
//
// The input is read from file, or stdin when file is absent or "-".
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/anirudhraja/rawpb"
	"github.com/anirudhraja/rawpb/internal/input"
	"github.com/anirudhraja/rawpb/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "rawpb: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	format      string
	compression string
	grpc        bool
	bytes       string
	fixed       string
	integers    string
	maxDepth    int
	path        string
	indent      bool
	logLevel    string
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("rawpb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "TOML config file")
	fs.StringVar(&o.format, "input", "auto", "input format: auto, binary, hex, base64")
	fs.StringVar(&o.compression, "compression", "auto", "input compression: none, auto, gzip, zlib, zstd, brotli")
	fs.BoolVar(&o.grpc, "grpc", false, "input is a stream of gRPC length-prefixed messages")
	fs.StringVar(&o.bytes, "bytes", "", "bytes rendering: base64, base64url, hex, array, lossy")
	fs.StringVar(&o.fixed, "fixed", "", "fixed32/fixed64 reading: auto, float, integer")
	fs.StringVar(&o.integers, "integers", "", "integer rendering: unsigned, signed, zigzag")
	fs.IntVar(&o.maxDepth, "max-depth", 0, "maximum message nesting")
	fs.StringVar(&o.path, "path", "", "print only the value at this gjson path")
	fs.BoolVar(&o.indent, "indent", true, "pretty-print the output")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	if fs.NArg() > 1 {
		return options{}, nil, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	return o, fs, nil
}

// loadConfig layers defaults, the config file, RAWPB_* variables and flags.
func loadConfig(o options) (rawpb.Config, error) {
	cfg := rawpb.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = rawpb.LoadConfig(o.configPath); err != nil {
			return rawpb.Config{}, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return rawpb.Config{}, err
	}

	if o.bytes != "" {
		if err := cfg.BytesEncoding.UnmarshalText([]byte(o.bytes)); err != nil {
			return rawpb.Config{}, err
		}
	}
	if o.fixed != "" {
		if err := cfg.Fixed.UnmarshalText([]byte(o.fixed)); err != nil {
			return rawpb.Config{}, err
		}
	}
	if o.integers != "" {
		if err := cfg.Integers.UnmarshalText([]byte(o.integers)); err != nil {
			return rawpb.Config{}, err
		}
	}
	if o.maxDepth != 0 {
		cfg.MaxDepth = o.maxDepth
	}
	return cfg, cfg.Validate()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := logging.New(stderr, o.logLevel)

	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	format, err := input.ParseFormat(o.format)
	if err != nil {
		return err
	}
	compression, err := input.ParseCompression(o.compression)
	if err != nil {
		return err
	}

	raw, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	detected := format == input.FormatAuto
	if detected {
		format = input.Detect(raw)
	}
	data, err := input.DecodeText(raw, format)
	if err != nil {
		return err
	}
	logger.Debug().
		Int("input_bytes", len(raw)).
		Str("input_format", format.String()).
		Str("bytes_encoding", cfg.BytesEncoding.String()).
		Str("fixed", cfg.Fixed.String()).
		Msg("decoding")

	parser := rawpb.New(cfg, rawpb.WithLogger(logger))

	out, err := decode(parser, data, compression, o.grpc, logger)
	if err != nil && detected && format == input.FormatBase64 {
		// Binary protobuf can be made of base64 characters only.
		if binOut, binErr := decode(parser, raw, compression, o.grpc, logger); binErr == nil {
			logger.Debug().AnErr("base64_error", err).Msg("input does not decode as base64 protobuf, reading it as binary")
			out, err = binOut, nil
		}
	}
	if err != nil {
		return err
	}

	if o.path != "" {
		result := gjson.GetBytes(out, o.path)
		if !result.Exists() {
			return fmt.Errorf("path %q not found", o.path)
		}
		out = []byte(result.Raw)
	}
	if o.indent {
		out = pretty.Pretty(out)
	} else {
		out = append(out, '\n')
	}

	_, err = stdout.Write(out)
	return err
}

// decode renders data as JSON. A gRPC stream is split first and each frame is
// inflated on its own; any other body is inflated as a whole.
func decode(parser *rawpb.Parser, data []byte, compression input.Compression, grpc bool, logger zerolog.Logger) ([]byte, error) {
	if grpc {
		return decodeGRPC(parser, data, compression, logger)
	}
	data, err := input.Decompress(data, compression)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("payload_bytes", len(data)).Msg("decompressed input")
	return parser.ParseJSON(data, "")
}

// decodeGRPC renders every frame of a gRPC stream as one element of a JSON array.
func decodeGRPC(parser *rawpb.Parser, data []byte, compression input.Compression, logger zerolog.Logger) ([]byte, error) {
	frames, err := input.SplitGRPCFrames(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, frame := range frames {
		msg, err := frame.Message(compression)
		if err != nil {
			return nil, err
		}
		doc, err := parser.ParseJSON(msg, "")
		if err != nil {
			return nil, fmt.Errorf("grpc frame %d: %w", i, err)
		}
		logger.Debug().Int("frame", i).Int("bytes", len(msg)).Bool("compressed", frame.Compressed).Msg("decoded grpc frame")
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(doc)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
