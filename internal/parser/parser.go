package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package
	"github.com/mcncl/jdiff/internal/errors" // Custom errors package
	"github.com/mcncl/jdiff/internal/models"
)

// Parse reads a single JSON document from reader. Object keys keep their
// source order, and the offsets of the root object's keys are recorded so
// that the report can be ordered by source position.
func Parse(reader io.Reader) (*models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read JSON input", err)
	}
	return parseBytes(data)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (*models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return parseBytes([]byte(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (*models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	doc, err := parseBytes(data)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			appErr.Message = fmt.Sprintf("%s in '%s'", appErr.Message, filePath)
		}
		return nil, err
	}
	doc.Path = filePath
	return doc, nil
}

func parseBytes(data []byte) (*models.Document, error) {
	d := &decoder{
		dec:     json.NewDecoder(bytes.NewReader(data)),
		data:    data,
		offsets: make(map[string]int),
	}
	d.dec.UseNumber() // Keep numbers as json.Number so equality is exact

	root, err := d.value(0)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, wrapDecodeError(err)
	}

	// Only whitespace may follow the root value.
	if _, err := d.dec.Token(); err == nil {
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParsingError("invalid trailing data after first JSON value", err)
	}

	return &models.Document{
		Raw:        string(data),
		Root:       root,
		KeyOffsets: d.offsets,
	}, nil
}

func wrapDecodeError(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// decoder builds an ordered value tree from the token stream of dec.
type decoder struct {
	dec     *json.Decoder
	data    []byte
	offsets map[string]int
}

func (d *decoder) value(depth int) (models.JSONValue, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if depth > 0 && stderrors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return d.object(depth)
		case '[':
			return d.array(depth)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
	default:
		// nil, bool, string or json.Number
		return t, nil
	}
}

func (d *decoder) object(depth int) (models.JSONValue, error) {
	obj := models.NewObject()
	for d.dec.More() {
		start := int(d.dec.InputOffset())
		tok, err := d.dec.Token()
		if err != nil {
			return nil, eof(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not a string", tok)
		}
		if depth == 0 {
			d.recordKey(key, start)
		}
		val, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, eof(err)
	}
	return obj, nil
}

func (d *decoder) array(depth int) (models.JSONValue, error) {
	arr := models.JSONArray{}
	for d.dec.More() {
		val, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, eof(err)
	}
	return arr, nil
}

// recordKey stores the offset of the opening quote of a root key. Between
// start and the decoder's current offset there is only whitespace, an
// optional comma, and the quoted key itself.
func (d *decoder) recordKey(key string, start int) {
	if _, seen := d.offsets[key]; seen {
		return
	}
	end := int(d.dec.InputOffset())
	if i := bytes.IndexByte(d.data[start:end], '"'); i >= 0 {
		d.offsets[key] = start + i
	}
}

func eof(err error) error {
	if stderrors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
