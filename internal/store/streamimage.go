package store

import (
	"encoding/base64"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// DecodeImage turns a DynamoDB stream image into the given struct via
// mapstructure, so handlers work with typed records instead of raw
// attribute values.
func DecodeImage(image map[string]events.DynamoDBAttributeValue, out interface{}) error {
	if err := mapstructure.Decode(ImageToMap(image), out); err != nil {
		return errors.Wrap(err, "decode stream image")
	}
	return nil
}

// ImageToMap converts a stream image into plain Go values.
func ImageToMap(image map[string]events.DynamoDBAttributeValue) map[string]interface{} {
	m := make(map[string]interface{}, len(image))
	for k, av := range image {
		m[k] = attributeToGo(av)
	}
	return m
}

func attributeToGo(av events.DynamoDBAttributeValue) interface{} {
	switch av.DataType() {
	case events.DataTypeString:
		return av.String()
	case events.DataTypeNumber:
		if f, err := strconv.ParseFloat(av.Number(), 64); err == nil {
			return f
		}
		return av.Number()
	case events.DataTypeBoolean:
		return av.Boolean()
	case events.DataTypeNull:
		return nil
	case events.DataTypeBinary:
		return base64.StdEncoding.EncodeToString(av.Binary())
	case events.DataTypeMap:
		return ImageToMap(av.Map())
	case events.DataTypeList:
		list := av.List()
		out := make([]interface{}, 0, len(list))
		for _, item := range list {
			out = append(out, attributeToGo(item))
		}
		return out
	case events.DataTypeStringSet:
		ss := av.StringSet()
		out := make([]interface{}, 0, len(ss))
		for _, s := range ss {
			out = append(out, s)
		}
		return out
	case events.DataTypeNumberSet:
		ns := av.NumberSet()
		out := make([]interface{}, 0, len(ns))
		for _, n := range ns {
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				out = append(out, f)
			} else {
				out = append(out, n)
			}
		}
		return out
	default:
		return nil
	}
}
