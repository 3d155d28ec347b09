package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resultSchema describes the bombardier result shape the harness writes:
// connection count and request total under spec, latency percentiles in
// nanoseconds, RPS and error totals under result.
const resultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["spec", "result"],
  "properties": {
    "spec": {
      "type": "object",
      "required": ["numberOfConnections"],
      "properties": {
        "numberOfConnections": {"type": "integer", "minimum": 1},
        "numberOfRequests": {"type": "integer", "minimum": 1},
        "method": {"type": "string"},
        "url": {"type": "string"}
      }
    },
    "result": {
      "type": "object",
      "required": ["latencies"],
      "properties": {
        "latencies": {
          "type": "object",
          "required": ["p95"],
          "properties": {
            "mean": {"type": "number", "minimum": 0},
            "p50": {"type": "number", "minimum": 0},
            "p95": {"type": "number", "exclusiveMinimum": 0},
            "p99": {"type": "number", "minimum": 0}
          }
        },
        "rps": {
          "type": "object",
          "properties": {
            "mean": {"type": "number", "minimum": 0},
            "stddev": {"type": "number", "minimum": 0}
          }
        },
        "errors": {
          "type": "object",
          "properties": {
            "total": {"type": "integer", "minimum": 0}
          }
        },
        "duration": {"type": "number", "minimum": 0}
      }
    }
  }
}`

var compiledResultSchema = jsonschema.MustCompileString("bombardier-result.json", resultSchema)

// ValidateResult checks a raw result file against the embedded schema.
func ValidateResult(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledResultSchema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
