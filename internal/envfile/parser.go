package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strings"
)

const (
	keyValueSeparatorConstant         = "="
	commentPrefixConstant             = "#"
	fileNotFoundMessageConstant       = "environment file not found"
	streamReadFailedMessageConstant   = "environment file could not be read"
	fileNotFoundErrorTemplateConstant = "%w: %s"
	streamReadErrorTemplateConstant   = "%w: %s: %v"
	initialLineBufferSizeConstant     = 64 * 1024
)

// ErrFileNotFound indicates the environment file does not exist.
var ErrFileNotFound = errors.New(fileNotFoundMessageConstant)

// ErrStreamReadFailed indicates the environment file exists but reading it failed.
var ErrStreamReadFailed = errors.New(streamReadFailedMessageConstant)

// Opener opens files for reading.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// Parse reads KEY=VALUE lines into an EnvMap.
//
// Each line is split on its first separator so values may contain "=".
// A line without a separator becomes a key with an empty value. Blank lines
// and lines starting with "#" are ignored. Later duplicates win. Lines have
// no length limit.
func Parse(reader io.Reader) (EnvMap, error) {
	envMap := EnvMap{}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, initialLineBufferSizeConstant), math.MaxInt)
	for scanner.Scan() {
		line := scanner.Text()
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 || strings.HasPrefix(trimmedLine, commentPrefixConstant) {
			continue
		}

		key, value, _ := strings.Cut(line, keyValueSeparatorConstant)
		envMap[key] = value
	}

	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}

	return envMap, nil
}

// Load parses the file at path using the operating system.
func Load(path string) (EnvMap, error) {
	return LoadWith(osOpener{}, path)
}

// LoadWith parses the file at path using the provided opener.
func LoadWith(opener Opener, path string) (EnvMap, error) {
	file, openError := opener.Open(path)
	if openError != nil {
		if errors.Is(openError, fs.ErrNotExist) {
			return nil, fmt.Errorf(fileNotFoundErrorTemplateConstant, ErrFileNotFound, path)
		}
		return nil, fmt.Errorf(streamReadErrorTemplateConstant, ErrStreamReadFailed, path, openError)
	}
	defer file.Close()

	envMap, parseError := Parse(file)
	if parseError != nil {
		return nil, fmt.Errorf(streamReadErrorTemplateConstant, ErrStreamReadFailed, path, parseError)
	}

	return envMap, nil
}

type osOpener struct{}

func (osOpener) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
