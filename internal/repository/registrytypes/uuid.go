package registrytypes

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var UUIDType = reflect.TypeOf(uuid.UUID{})

// UuidEncodeValue writes a uuid.UUID as its canonical string form.
func UuidEncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != UUIDType {
		return bsoncodec.ValueEncoderError{Name: "UuidEncodeValue", Types: []reflect.Type{UUIDType}, Received: val}
	}

	id := val.Interface().(uuid.UUID)
	return vw.WriteString(id.String())
}

// UuidDecodeValue reads a uuid.UUID back from its string form.
func UuidDecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != UUIDType {
		return bsoncodec.ValueDecoderError{Name: "UuidDecodeValue", Types: []reflect.Type{UUIDType}, Received: val}
	}

	var id uuid.UUID
	switch vrType := vr.Type(); vrType {
	case bsontype.String:
		str, err := vr.ReadString()
		if err != nil {
			return err
		}

		id, err = uuid.Parse(str)
		if err != nil {
			return err
		}
	case bsontype.Null:
		if err := vr.ReadNull(); err != nil {
			return err
		}
	case bsontype.Undefined:
		if err := vr.ReadUndefined(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot decode %v into a uuid.UUID", vrType)
	}

	val.Set(reflect.ValueOf(id))
	return nil
}
