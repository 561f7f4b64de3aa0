package extractor

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"spine-db/internal/logging"
)

// attrReader is the slice of the parsed-file API the attribute mapper
// reads from.
type attrReader interface {
	Get(key string) (val interface{}, has bool)
}

// varReader is the slice of the parsed-file API the column reader
// reads from.
type varReader interface {
	ListVariables() []string
	GetVariable(name string) (*api.Variable, error)
}

// readAttributes reads metadata embedded in the file: root-level
// attributes for version/model/dataset strings, and the per-event
// columns for run, subrun and event ranges. SPINE writes its HDF5
// output with the NetCDF4-compatible layout this reader understands;
// files it cannot parse simply contribute nothing.
func readAttributes(path string) Record {
	nc, err := netcdf.Open(path)
	if err != nil {
		logging.Debug("No readable embedded metadata in %s: %v", path, err)
		return Record{}
	}
	defer nc.Close()

	return metadataFromFile(nc.Attributes(), nc)
}

// metadataFromFile maps a parsed file's attributes and variables onto
// a record.
func metadataFromFile(attrs attrReader, vars varReader) Record {
	var rec Record

	// Attribute names vary across spine-prod releases.
	rec.SpineVersion = attrString(attrs, "spine_version", "version")
	rec.SpineProdVersion = attrString(attrs, "spine_prod_version")
	rec.ModelName = attrString(attrs, "model_name", "config_name")
	rec.DatasetName = attrString(attrs, "dataset_name", "dataset")

	present := make(map[string]bool)
	for _, name := range vars.ListVariables() {
		present[name] = true
	}

	// Run/subrun are fixed per file; the first entry is enough.
	if present["run"] {
		if vals := intColumn(vars, "run"); len(vals) > 0 {
			rec.Run = &vals[0]
		}
	}
	if present["subrun"] {
		if vals := intColumn(vars, "subrun"); len(vals) > 0 {
			rec.Subrun = &vals[0]
		}
	}

	eventCol := ""
	switch {
	case present["event"]:
		eventCol = "event"
	case present["event_id"]:
		eventCol = "event_id"
	}
	if eventCol != "" {
		if ids := intColumn(vars, eventCol); len(ids) > 0 {
			lo, hi := ids[0], ids[0]
			for _, id := range ids[1:] {
				if id < lo {
					lo = id
				}
				if id > hi {
					hi = id
				}
			}
			n := int64(len(ids))
			rec.EventMin, rec.EventMax, rec.NumEvents = &lo, &hi, &n
		}
	}

	return rec
}

// attrString returns the first non-empty string attribute among keys.
func attrString(attrs attrReader, keys ...string) *string {
	for _, key := range keys {
		v, has := attrs.Get(key)
		if !has || v == nil {
			continue
		}
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case []string:
			if len(val) > 0 {
				s = val[0]
			}
		default:
			s = fmt.Sprint(val)
		}
		if s != "" {
			return &s
		}
	}
	return nil
}

// intColumn reads an integer variable as []int64, tolerating the
// various integer widths HDF5 files store.
func intColumn(vars varReader, name string) []int64 {
	vr, err := vars.GetVariable(name)
	if err != nil || vr == nil {
		return nil
	}

	switch vals := vr.Values.(type) {
	case []int64:
		return vals
	case []int32:
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = int64(v)
		}
		return out
	case []int16:
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = int64(v)
		}
		return out
	case []uint32:
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = int64(v)
		}
		return out
	case []uint64:
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = int64(v) //nolint:gosec // event counters never approach the sign bit
		}
		return out
	case int64:
		return []int64{vals}
	case int32:
		return []int64{int64(vals)}
	default:
		logging.Debug("Variable %q has unsupported type %T", name, vr.Values)
		return nil
	}
}
