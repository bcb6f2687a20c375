package model

import (
	"fmt"
	"math"
	"strings"
)

// Reserved keys of the plain-data representation. Keys carrying the sentinel
// prefix hold structural metadata and are skipped when re-populating.
const (
	PlainPrefix  = "$"
	PlainKindKey = "$kind"
	PlainIDKey   = "$id"
	PlainUIDsKey = "$uids"

	plainKindModel   = "model"
	plainKindFeature = "feature"
)

// ToPlain flattens the feature into a plain-data node: one ordered value
// sequence per populated property, plus sentinel metadata.
func (f *Feature) ToPlain() map[string]any {
	out := map[string]any{
		PlainKindKey: plainKindFeature,
		PlainIDKey:   f.id,
	}
	uids := make(map[string]any)
	for _, name := range f.reg.Keys() {
		values := f.store.Values(name)
		if len(values) == 0 {
			continue
		}
		out[name] = values
		if bound := f.store.UIDs(name); bound != nil {
			uids[name] = toPlainUIDs(bound)
		}
	}
	if len(uids) > 0 {
		out[PlainUIDsKey] = uids
	}
	return out
}

// ToPlain flattens the model into a plain-data node; every stored feature is
// recursively flattened into a sub-node.
func (m *Model) ToPlain() map[string]any {
	out := map[string]any{
		PlainKindKey: plainKindModel,
		PlainIDKey:   m.id,
	}
	uids := make(map[string]any)
	for _, name := range m.reg.Keys() {
		items := m.store.Items(name)
		if len(items) == 0 {
			continue
		}
		nodes := make([]any, len(items))
		for i, item := range items {
			nodes[i] = item.Value.(*Feature).ToPlain()
		}
		out[name] = nodes
		if bound := m.store.UIDs(name); bound != nil {
			uids[name] = toPlainUIDs(bound)
		}
	}
	if len(uids) > 0 {
		out[PlainUIDsKey] = uids
	}
	return out
}

// FromPlain re-populates the feature from a plain-data node. Sentinel keys
// are skipped; every other key must be declared by the bound registry and
// map to a sequence of raw values, replayed through set/add semantics so
// schema and cardinality rules apply. UID bindings recorded under $uids are
// replayed with their values.
func (f *Feature) FromPlain(data map[string]any) error {
	if err := checkPlainKeys(f.reg.Keys(), data); err != nil {
		return err
	}
	uids, err := plainUIDsByOrdinal(data)
	if err != nil {
		return err
	}
	for _, name := range f.reg.Keys() {
		values, ok, err := plainSequence(data, name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		entry, _ := f.reg.Entry(name)
		if entry.Singleton {
			if len(values) != 1 {
				return fmt.Errorf("model: plain node stores %d values for singleton %q", len(values), name)
			}
			if err := f.Set(name, values[0]); err != nil {
				return err
			}
			continue
		}
		for ordinal, value := range values {
			if err := f.addValue(name, value, uids[name][ordinal], true); err != nil {
				return err
			}
		}
	}
	return nil
}

// FromPlain re-populates the model from a plain-data node, reconstructing
// feature instances through SetFeature/AddFeature and recursing into each
// sub-node.
func (m *Model) FromPlain(data map[string]any) error {
	if err := checkPlainKeys(m.reg.Keys(), data); err != nil {
		return err
	}
	uids, err := plainUIDsByOrdinal(data)
	if err != nil {
		return err
	}
	for _, name := range m.reg.Keys() {
		nodes, ok, err := plainSequence(data, name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		entry, _ := m.reg.Entry(name)
		for ordinal, raw := range nodes {
			node, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("model: plain node for feature %q[%d] is %T, want a mapping", name, ordinal, raw)
			}
			var feature *Feature
			if entry.Singleton {
				feature, err = m.SetFeature(name)
			} else {
				feature, err = m.addFeature(name, uids[name][ordinal])
			}
			if err != nil {
				return err
			}
			if err := feature.FromPlain(node); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkPlainKeys(known []string, data map[string]any) error {
	declared := make(map[string]struct{}, len(known))
	for _, name := range known {
		declared[name] = struct{}{}
	}
	for key := range data {
		if strings.HasPrefix(key, PlainPrefix) {
			continue
		}
		if _, ok := declared[key]; !ok {
			return &UnknownKeyError{Name: key}
		}
	}
	return nil
}

func plainSequence(data map[string]any, name string) ([]any, bool, error) {
	raw, ok := data[name]
	if !ok {
		return nil, false, nil
	}
	values, ok := raw.([]any)
	if !ok {
		return nil, false, fmt.Errorf("model: plain node for %q is %T, want a sequence", name, raw)
	}
	return values, true, nil
}

func toPlainUIDs(bound map[string]int) map[string]any {
	out := make(map[string]any, len(bound))
	for uid, ordinal := range bound {
		out[uid] = ordinal
	}
	return out
}

// plainUIDsByOrdinal inverts the node's $uids mapping into name → ordinal →
// uid so values can be replayed together with their bindings.
func plainUIDsByOrdinal(data map[string]any) (map[string]map[int]string, error) {
	raw, ok := data[PlainUIDsKey]
	if !ok {
		return nil, nil
	}
	byName, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("model: %s node is %T, want a mapping", PlainUIDsKey, raw)
	}
	out := make(map[string]map[int]string, len(byName))
	for name, rawBindings := range byName {
		bindings, ok := rawBindings.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("model: %s bindings for %q are %T, want a mapping", PlainUIDsKey, name, rawBindings)
		}
		inverted := make(map[int]string, len(bindings))
		for uid, rawOrdinal := range bindings {
			ordinal, ok := plainOrdinal(rawOrdinal)
			if !ok {
				return nil, fmt.Errorf("model: %s ordinal for %q/%q is %T, want an integer", PlainUIDsKey, name, uid, rawOrdinal)
			}
			inverted[ordinal] = uid
		}
		out[name] = inverted
	}
	return out, nil
}

// plainOrdinal accepts the integer shapes JSON and YAML decoders produce.
func plainOrdinal(raw any) (int, bool) {
	switch n := raw.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}
