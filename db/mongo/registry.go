package mongo

import (
	"reflect"

	"github.com/dalemusser/emailaddr/email"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var addressType = reflect.TypeOf(email.Address{})

// Registry returns the default BSON registry extended with email.Address,
// which is stored as a BSON string (the zero Address as null).
//
// Documents store the text form rather than a binary subtype so that
// addresses stay readable and queryable from the shell. Note that Mongo
// compares strings bytewise; sort in Go with email.Compare when the
// domain-major, case-insensitive order matters.
func Registry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(addressType, bsoncodec.ValueEncoderFunc(encodeAddress))
	reg.RegisterTypeDecoder(addressType, bsoncodec.ValueDecoderFunc(decodeAddress))
	return reg
}

func encodeAddress(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != addressType {
		return bsoncodec.ValueEncoderError{Name: "encodeAddress", Types: []reflect.Type{addressType}, Received: val}
	}
	a := val.Interface().(email.Address)
	if a.IsZero() {
		return vw.WriteNull()
	}
	return vw.WriteString(a.String())
}

func decodeAddress(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != addressType {
		return bsoncodec.ValueDecoderError{Name: "decodeAddress", Types: []reflect.Type{addressType}, Received: val}
	}

	switch vr.Type() {
	case bsontype.Null:
		if err := vr.ReadNull(); err != nil {
			return err
		}
		val.Set(reflect.Zero(addressType))
		return nil
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return err
		}
		a, err := email.Parse(s)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(a))
		return nil
	default:
		return bsoncodec.ValueDecoderError{Name: "decodeAddress", Types: []reflect.Type{addressType}, Received: val}
	}
}
