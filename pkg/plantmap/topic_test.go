package plantmap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"molinolab.org/plant-mapping-service/pkg/models"
)

func TestDeviceIDFromTopic(t *testing.T) {
	cases := []struct {
		topic string
		want  string
	}{
		{"biodata/biodata_12345/midi", "biodata_12345"},
		{"biodata/biodata_12345", "biodata"},
		{"biodata_12345", "biodata_12345"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DeviceIDFromTopic(c.topic), "topic %q", c.topic)
	}
}

func TestMeasurementTags(t *testing.T) {
	assert.Equal(t, map[string]string{"plant_name": "unknown"}, MeasurementTags(nil))

	assoc := &models.Association{
		ID:           "assoc_1",
		DeviceID:     "d1",
		PlantName:    "Roble del Parque Central",
		PlantSpecies: strp("Quercus robur"),
		GPSLatitude:  f64p(40.4168),
		GPSLongitude: f64p(-3.7038),
	}

	tags := MeasurementTags(assoc)
	assert.Equal(t, "Roble del Parque Central", tags["plant_name"])
	assert.Equal(t, "Quercus robur", tags["plant_species"])
	assert.Equal(t, "assoc_1", tags["association_id"])
	assert.Equal(t, "40.4168", tags["gps_lat"])
	assert.Equal(t, "-3.7038", tags["gps_lon"])
}

func TestMeasurementTags_SkipsMissingFields(t *testing.T) {
	assoc := &models.Association{ID: "assoc_2", DeviceID: "d2", PlantName: "Elm"}

	tags := MeasurementTags(assoc)
	assert.Equal(t, "Elm", tags["plant_name"])
	_, hasSpecies := tags["plant_species"]
	assert.False(t, hasSpecies)
	_, hasLat := tags["gps_lat"]
	assert.False(t, hasLat)
}
