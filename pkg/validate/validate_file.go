package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/adbridge/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// StdinPath — путь, означающий чтение из stdin.
const StdinPath = "-"

const maxLineBytes = 10 * 1024 * 1024

// ResolveFormat — формат по расширению файла для FormatAuto.
// stdin и файлы без известного расширения читаются как JSONL.
func ResolveFormat(path string, format InputFormat) InputFormat {
	if format != FormatAuto {
		return format
	}
	if path == StdinPath {
		return FormatJSONL
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatJSONL
	}
}

// ValidateFile — открывает выгрузку (или stdin для "-") и проверяет её.
func ValidateFile(ctx context.Context, validator ports.AdValidator, path string, format InputFormat, out io.Writer) (Report, error) {
	format = ResolveFormat(path, format)

	var in io.Reader = os.Stdin
	if path != StdinPath {
		file, err := os.Open(path)
		if err != nil {
			return newReport(), fmt.Errorf("open file: %w", err)
		}
		defer file.Close()
		in = file
	}
	return ValidateStream(ctx, validator, in, format, out)
}

// ValidateStream — проверяет события из reader'а.
// Каждое валидное событие пишется в out каноническим JSON одной строкой;
// невалидные попадают в отчёт и не прерывают проверку.
// Ошибка возвращается только при сбое чтения/записи или нарушении структуры JSON-документа.
func ValidateStream(ctx context.Context, validator ports.AdValidator, in io.Reader, format InputFormat, out io.Writer) (Report, error) {
	rep := newReport()
	emit := func(pos int, raw []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ad, err := ValidateAdFromJSON(ctx, validator, raw)
		if err != nil {
			rep.addInvalid(pos, peekUUID(raw), err)
			return nil
		}
		canonical, err := json.Marshal(ad)
		if err != nil {
			return fmt.Errorf("marshal ad %s: %w", ad.UUID, err)
		}
		canonical = append(canonical, '\n')
		if _, err := out.Write(canonical); err != nil {
			return fmt.Errorf("write ad %s: %w", ad.UUID, err)
		}
		rep.addValid(ad.Status)
		return nil
	}

	var err error
	switch format {
	case FormatJSONL:
		err = eachLine(in, emit)
	case FormatJSON:
		err = eachDocument(in, emit)
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	return rep, err
}

// eachLine — JSONL: одна запись на строку, пустые строки пропускаются.
func eachLine(in io.Reader, fn func(pos int, raw []byte) error) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := fn(line, raw); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan line %d: %w", line+1, err)
	}
	return nil
}

// eachDocument — JSON: либо один объект, либо массив объектов (читается потоково).
func eachDocument(in io.Reader, fn func(pos int, raw []byte) error) error {
	br := bufio.NewReader(in)
	first, err := firstNonSpace(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty json document")
		}
		return fmt.Errorf("read json: %w", err)
	}

	if first != '[' {
		raw, err := io.ReadAll(br)
		if err != nil {
			return fmt.Errorf("read json: %w", err)
		}
		return fn(1, raw)
	}

	dec := json.NewDecoder(br)
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read json array: %w", err)
	}
	for pos := 1; dec.More(); pos++ {
		var elem json.RawMessage
		if err := dec.Decode(&elem); err != nil {
			return fmt.Errorf("decode element %d: %w", pos, err)
		}
		if err := fn(pos, elem); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read json array end: %w", err)
	}
	return nil
}

func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

// peekUUID — uuid из невалидной записи, если его удаётся достать.
func peekUUID(raw []byte) string {
	var probe struct {
		UUID string `json:"uuid"`
	}
	if json.Unmarshal(raw, &probe) != nil {
		return ""
	}
	return probe.UUID
}
