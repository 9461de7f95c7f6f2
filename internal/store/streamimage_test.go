package store

import (
	"reflect"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/venuelab/ticketfns/internal/model"
)

func TestImageToMap(t *testing.T) {
	image := map[string]events.DynamoDBAttributeValue{
		"id":        events.NewStringAttribute("b1"),
		"seats":     events.NewNumberAttribute("2"),
		"paid":      events.NewBooleanAttribute(true),
		"note":      events.NewNullAttribute(),
		"meta":      events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{"tier": events.NewStringAttribute("vip")}),
		"attendees": events.NewListAttribute([]events.DynamoDBAttributeValue{events.NewStringAttribute("a"), events.NewStringAttribute("b")}),
	}

	got := ImageToMap(image)
	want := map[string]interface{}{
		"id":        "b1",
		"seats":     float64(2),
		"paid":      true,
		"note":      nil,
		"meta":      map[string]interface{}{"tier": "vip"},
		"attendees": []interface{}{"a", "b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ImageToMap = %#v, want %#v", got, want)
	}
}

func TestDecodeImage(t *testing.T) {
	t.Run("full booking", func(t *testing.T) {
		image := map[string]events.DynamoDBAttributeValue{
			"id":        events.NewStringAttribute("b1"),
			"userId":    events.NewStringAttribute("u1"),
			"eventName": events.NewStringAttribute("Jazz Night"),
		}
		var b model.Booking
		if err := DecodeImage(image, &b); err != nil {
			t.Fatalf("DecodeImage: %v", err)
		}
		if b.ID != "b1" || b.UserID != "u1" || b.EventName != "Jazz Night" {
			t.Errorf("booking = %+v", b)
		}
	})

	t.Run("missing fields decode to zero values", func(t *testing.T) {
		image := map[string]events.DynamoDBAttributeValue{
			"id": events.NewStringAttribute("b2"),
		}
		var b model.Booking
		if err := DecodeImage(image, &b); err != nil {
			t.Fatalf("DecodeImage: %v", err)
		}
		if b.UserID != "" || b.EventName != "" {
			t.Errorf("booking = %+v, want empty userId and eventName", b)
		}
	})
}
