package plantmap

import (
	"strconv"
	"strings"

	"molinolab.org/plant-mapping-service/pkg/models"
)

// DeviceIDFromTopic extracts a device id from an MQTT topic path. The
// expected pattern is {base}/{device_id}/{suffix} (e.g. biodata/{id}/midi),
// so the penultimate segment is tried first and the last segment is the
// fallback. Upstream topic layouts vary; this heuristic is best-effort and
// returns "" when the topic is empty.
func DeviceIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) >= 2 && parts[len(parts)-2] != "" {
		return parts[len(parts)-2]
	}
	if last := parts[len(parts)-1]; last != "" {
		return last
	}
	return ""
}

// MeasurementTags shapes an association into flat string tags for a
// time-series pipeline. A nil association tags the plant as "unknown" so
// unmapped devices still land somewhere queryable.
func MeasurementTags(assoc *models.Association) map[string]string {
	tags := map[string]string{}

	if assoc == nil {
		tags["plant_name"] = "unknown"
		return tags
	}

	tags["plant_name"] = assoc.PlantName
	tags["association_id"] = assoc.ID
	if assoc.PlantSpecies != nil {
		tags["plant_species"] = *assoc.PlantSpecies
	}
	if assoc.GPSLatitude != nil {
		tags["gps_lat"] = strconv.FormatFloat(*assoc.GPSLatitude, 'f', -1, 64)
	}
	if assoc.GPSLongitude != nil {
		tags["gps_lon"] = strconv.FormatFloat(*assoc.GPSLongitude, 'f', -1, 64)
	}

	return tags
}
