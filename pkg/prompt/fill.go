package prompt

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/goliatone/go-modelkit/pkg/model"
	"github.com/goliatone/go-modelkit/pkg/schema"
	"github.com/goliatone/go-modelkit/pkg/spec"
)

// Fill walks the model's specification and prompts for every feature and
// property the required-check would reject, populating the model in place.
// Items already satisfying their required count are not prompted for.
func Fill(ctx context.Context, drv Driver, m *model.Model) error {
	reg := m.Registry()
	for _, name := range reg.Keys() {
		entry, _ := reg.Entry(name)
		if entry.Schema.Kind != spec.ItemSchemaRegistry {
			continue
		}
		features, err := ensureFeatures(ctx, drv, m, name, entry)
		if err != nil {
			return err
		}
		for _, feature := range features {
			if err := fillFeature(ctx, drv, name, feature, entry.Schema.Sub); err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureFeatures(ctx context.Context, drv Driver, m *model.Model, name string, entry spec.Entry) ([]*model.Feature, error) {
	if entry.Singleton {
		feature, err := m.Feature(name)
		if err != nil {
			return nil, err
		}
		if feature == nil {
			if entry.Required <= 0 {
				return nil, nil
			}
			if feature, err = m.SetFeature(name); err != nil {
				return nil, err
			}
		}
		return []*model.Feature{feature}, nil
	}

	features, err := m.Features(name)
	if err != nil {
		return nil, err
	}
	for i := len(features); i < entry.Required; i++ {
		var feature *model.Feature
		if entry.UIDRequired {
			uid, err := drv.Input(ctx, InputConfig{
				Message: fmt.Sprintf("UID for %s #%d", name, i+1),
			})
			if err != nil {
				return nil, err
			}
			feature, err = m.AddFeatureUID(name, uid)
			if err != nil {
				return nil, err
			}
		} else {
			if feature, err = m.AddFeature(name); err != nil {
				return nil, err
			}
		}
		features = append(features, feature)
	}
	return features, nil
}

func fillFeature(ctx context.Context, drv Driver, featureName string, feature *model.Feature, reg *spec.Registry) error {
	for _, name := range reg.Keys() {
		entry, _ := reg.Entry(name)
		if entry.Required <= 0 {
			continue
		}
		count, err := feature.Len(name)
		if err != nil {
			return err
		}
		label := featureName + "." + name
		if entry.Singleton {
			if count > 0 {
				continue
			}
			value, err := promptValue(ctx, drv, label, entry.Schema.Descriptor)
			if err != nil {
				return err
			}
			if err := feature.Set(name, value); err != nil {
				return err
			}
			continue
		}
		for i := count; i < entry.Required; i++ {
			value, err := promptValue(ctx, drv, fmt.Sprintf("%s #%d", label, i+1), entry.Schema.Descriptor)
			if err != nil {
				return err
			}
			if entry.UIDRequired {
				uid, err := drv.Input(ctx, InputConfig{
					Message: fmt.Sprintf("UID for %s #%d", label, i+1),
				})
				if err != nil {
					return err
				}
				if err := feature.AddUID(name, uid, value); err != nil {
					return err
				}
				continue
			}
			if err := feature.Add(name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func promptValue(ctx context.Context, drv Driver, label string, d schema.Descriptor) (any, error) {
	d = d.Normalize()
	if d.Wrapped {
		return promptScalar(ctx, drv, label, d.Fields[schema.WrappedField])
	}
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]any, len(names))
	for _, name := range names {
		value, err := promptScalar(ctx, drv, label+"."+name, d.Fields[name])
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

func promptScalar(ctx context.Context, drv Driver, label string, c schema.Constraint) (any, error) {
	switch c.Type {
	case schema.TypeBoolean:
		return drv.Confirm(ctx, ConfirmConfig{Message: label})
	case schema.TypeString:
		return drv.Input(ctx, InputConfig{Message: label})
	case schema.TypeInteger:
		text, err := drv.Input(ctx, InputConfig{
			Message: label,
			Validator: func(answer string) error {
				_, err := strconv.Atoi(answer)
				return err
			},
		})
		if err != nil {
			return nil, err
		}
		return strconv.Atoi(text)
	case schema.TypeNumber:
		text, err := drv.Input(ctx, InputConfig{
			Message: label,
			Validator: func(answer string) error {
				_, err := strconv.ParseFloat(answer, 64)
				return err
			},
		})
		if err != nil {
			return nil, err
		}
		return strconv.ParseFloat(text, 64)
	default:
		return nil, fmt.Errorf("prompt: cannot prompt for %s value %q", c.Type, label)
	}
}
