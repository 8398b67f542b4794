package api

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Money goes out as JSON numbers. Quoted and unquoted input both parse.
	decimal.MarshalJSONWithoutQuotes = true
}

// CodecName is registered under the name Connect uses for
// application/json payloads.
const CodecName = "json"

// JSONCodec marshals plain Go structs for Connect handlers and clients.
type JSONCodec struct{}

func (JSONCodec) Name() string { return CodecName }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
