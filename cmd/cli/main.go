package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/karthikeya-ram/vocalguard/pkg/logger"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard"
)

var (
	language    string
	format      string
	profilePath string
	timeoutSec  int
)

func init() {
	flag.StringVar(&language, "lang", "", "Declared language of the clip (tamil, english, hindi, malayalam, telugu)")
	flag.StringVar(&format, "format", "", "Audio format (mp3 or wav); inferred from the file extension when empty")
	flag.StringVar(&profilePath, "profiles", os.Getenv("VOCALGUARD_PROFILES"), "Path to language profile YAML (empty = embedded defaults)")
	flag.IntVar(&timeoutSec, "timeout", 30, "Processing timeout in seconds")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -lang <language> [flags] <audio-file>\n\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	log := logger.GetLogger()

	if flag.NArg() != 1 || language == "" {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	var opts []vocalguard.Option
	if profilePath != "" {
		opts = append(opts, vocalguard.WithProfilePath(profilePath))
	}
	opts = append(opts, vocalguard.WithTimeout(time.Duration(timeoutSec)*time.Second))

	service, err := vocalguard.New(opts...)
	if err != nil {
		log.Fatalf("Failed to create classification service: %v", err)
	}

	result, err := service.Classify(context.Background(), vocalguard.Request{
		Audio:    data,
		Format:   format,
		Language: language,
	})
	if err != nil {
		log.Fatalf("Classification failed: %v", err)
	}

	fmt.Printf("File:           %s\n", path)
	fmt.Printf("Language:       %s\n", result.Language)
	fmt.Printf("Classification: %s\n", result.Label)
	fmt.Printf("Confidence:     %.3f\n", result.Confidence)
	fmt.Printf("Explanation:    %s\n", result.Explanation)
	if result.Degraded {
		fmt.Println("Note: scoring ran in degraded mode")
	}
}
