package blob

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kaptinlin/jsonrepair"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/logger"
)

// DecodeJSON decodes JSON text into a blob tree, keeping object key
// order. Input that fails to parse is repaired once and retried.
func DecodeJSON(data []byte) (domain.Node, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return domain.Null(), fmt.Errorf("%w: empty input", domain.ErrMissingInput)
	}

	node, err := decodeStrict(data)
	if err == nil {
		return node, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return domain.Null(), fmt.Errorf("%w: decoding form data: %v (repair failed: %v)",
			domain.ErrMissingInput, err, repairErr)
	}
	logger.Debug("Form data was malformed, decoding repaired text")

	node, err2 := decodeStrict([]byte(repaired))
	if err2 != nil {
		return domain.Null(), fmt.Errorf("%w: decoding form data: %v", domain.ErrMissingInput, err)
	}
	return node, nil
}

// decodeStrict decodes exactly one JSON value.
func decodeStrict(data []byte) (domain.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeValue(dec)
	if err != nil {
		return domain.Null(), err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.Null(), errors.New("unexpected data after top-level value")
	}
	return node, nil
}

func decodeValue(dec *json.Decoder) (domain.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return domain.Null(), err
	}

	switch v := tok.(type) {
	case nil:
		return domain.Null(), nil
	case bool:
		return domain.Bool(v), nil
	case string:
		return domain.String(v), nil
	case json.Number:
		return domain.NumberLiteral(v.String())
	case json.Delim:
		switch v {
		case '[':
			return decodeSequence(dec)
		case '{':
			return decodeObject(dec)
		}
	}
	return domain.Null(), fmt.Errorf("unexpected token %v", tok)
}

func decodeSequence(dec *json.Decoder) (domain.Node, error) {
	var items []domain.Node
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return domain.Null(), err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil { // ']'
		return domain.Null(), err
	}
	return domain.Sequence(items...), nil
}

func decodeObject(dec *json.Decoder) (domain.Node, error) {
	var b domain.ObjectBuilder
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return domain.Null(), err
		}
		key, ok := tok.(string)
		if !ok {
			return domain.Null(), fmt.Errorf("unexpected object key %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return domain.Null(), err
		}
		b.Set(key, value)
	}
	if _, err := dec.Token(); err != nil { // '}'
		return domain.Null(), err
	}
	return b.Build(), nil
}

// DecodeDocument decodes either raw JSON form data or an HTML page
// embedding it.
func DecodeDocument(content []byte) (domain.Node, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return domain.Null(), fmt.Errorf("%w: empty input", domain.ErrMissingInput)
	}
	if trimmed[0] == '[' || trimmed[0] == '{' {
		return DecodeJSON(trimmed)
	}

	data, err := FindEmbeddedData(trimmed)
	if err != nil {
		return domain.Null(), err
	}
	return DecodeJSON(data)
}
