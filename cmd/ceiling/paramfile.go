package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-loudness/dsp/effects/dynamics"
)

// A parameter file is a JSON object mapping parameter keys to values in
// engineering units. Switches accept booleans or numbers. Keys that are
// absent keep their current value.

func parseParamFile(data []byte) (map[dynamics.ParamID]float64, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parameter file: %w", err)
	}

	out := make(map[dynamics.ParamID]float64, len(raw))
	for key, msg := range raw {
		id, ok := dynamics.ParamByKey(key)
		if !ok {
			return nil, fmt.Errorf("parameter file: unknown parameter %q", key)
		}

		var v float64
		if err := json.Unmarshal(msg, &v); err != nil {
			var b bool
			if json.Unmarshal(msg, &b) != nil {
				return nil, fmt.Errorf("parameter file: %s: want a number or a boolean, got %s", key, msg)
			}

			if b {
				v = 1
			}
		}

		out[id] = v
	}

	return out, nil
}

// loadParamFile reads path and stores every value it names. Nothing is
// stored when the file does not parse.
func loadParamFile(path string, store *dynamics.ParamStore) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	values, err := parseParamFile(data)
	if err != nil {
		return err
	}

	for id, v := range values {
		store.Set(id, v)
	}

	return nil
}

func writeParamFile(w io.Writer, p dynamics.Params) error {
	out := make(map[string]any, dynamics.NumParams)

	for _, d := range dynamics.Descriptors() {
		v := p.Value(d.ID)
		if d.Kind == dynamics.KindContinuous {
			out[d.Key] = v
		} else {
			out[d.Key] = v >= 0.5
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
