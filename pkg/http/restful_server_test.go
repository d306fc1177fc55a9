package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"molinolab.org/plant-mapping-service/pkg/plantmap/mocks"
	_ "molinolab.org/plant-mapping-service/pkg/testing"

	"molinolab.org/plant-mapping-service/pkg/common"
	"molinolab.org/plant-mapping-service/pkg/plantmap"
	"molinolab.org/plant-mapping-service/pkg/store"
)

func setupTestServer(t *testing.T) *RestfulServer {
	adapter := store.NewFileAdapter(filepath.Join(t.TempDir(), "device-plant-mapping.json"))

	// ttl 0 so every request observes the latest write
	pm := &plantmap.PlantMap{
		Store: adapter,
		Cache: plantmap.NewReadCache(adapter, 0, nil),
	}
	pm.WithServices(plantmap.ServiceOpts{
		Association: pm.GetIAssociation(),
	})

	rs := &RestfulServer{
		Server:   gin.Default(),
		PlantMap: pm,
		// default we use no limiter, if need, later assign rs.RateLimiterStore = plantmap.NewRateLimiterStore(...)
	}

	rs.Setup()

	return rs
}

func doJSON(rs *RestfulServer, method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	rs := setupTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAssociateWorkflow(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)

	// create the first association
	w := doJSON(rs, "POST", "/device-plant/associate", gin.H{
		"device_id":  "d1",
		"plant_name": "Oak",
		"start_time": "2024-01-01T00:00:00.000Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Success       bool   `json:"success"`
		AssociationID string `json:"association_id"`
		Association   struct {
			ID        string  `json:"id"`
			PlantName string  `json:"plant_name"`
			EndTime   *string `json:"end_time"`
		} `json:"association"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.True(t, createResp.Success)
	assert.NotEmpty(t, createResp.AssociationID)
	assert.Nil(t, createResp.Association.EndTime)

	// it resolves as the active association
	w = doJSON(rs, "GET", "/device-plant/active/d1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var active struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &active))
	assert.Equal(t, createResp.AssociationID, active.ID)

	// replacing the plant closes the first interval
	w = doJSON(rs, "POST", "/device-plant/associate", gin.H{
		"device_id":  "d1",
		"plant_name": "Pine",
		"start_time": "2024-02-01T00:00:00.000Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(rs, "GET", "/device-plant/associations/d1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		DeviceID     string `json:"device_id"`
		Count        int    `json:"count"`
		Associations []struct {
			PlantName string  `json:"plant_name"`
			StartTime string  `json:"start_time"`
			EndTime   *string `json:"end_time"`
		} `json:"associations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, "d1", list.DeviceID)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "Pine", list.Associations[0].PlantName)
	assert.Equal(t, "Oak", list.Associations[1].PlantName)
	require.NotNil(t, list.Associations[1].EndTime)
	assert.Equal(t, "2024-02-01T00:00:00.000Z", *list.Associations[1].EndTime)

	// close the current one
	w = doJSON(rs, "POST", "/device-plant/close/d1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, "GET", "/device-plant/active/d1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// nothing left to close
	w = doJSON(rs, "POST", "/device-plant/close/d1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssociateValidation(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing plant_name", gin.H{"device_id": "d1"}},
		{"missing device_id", gin.H{"plant_name": "Oak"}},
		{"latitude out of range", gin.H{"device_id": "d1", "plant_name": "Oak", "gps_latitude": 95}},
		{"longitude out of range", gin.H{"device_id": "d1", "plant_name": "Oak", "gps_longitude": 200}},
		{"end before start", gin.H{
			"device_id": "d1", "plant_name": "Oak",
			"start_time": "2024-02-01T00:00:00.000Z", "end_time": "2024-01-01T00:00:00.000Z",
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := doJSON(rs, "POST", "/device-plant/associate", c.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAssociate_MalformedBody(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)

	req := httptest.NewRequest("POST", "/device-plant/associate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetActive_UnknownDevice(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)

	w := doJSON(rs, "GET", "/device-plant/active/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetActive_AtInstant(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)

	w := doJSON(rs, "POST", "/device-plant/associate", gin.H{
		"device_id":  "d1",
		"plant_name": "Oak",
		"start_time": "2024-01-01T00:00:00.000Z",
		"end_time":   "2024-01-10T00:00:00.000Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(rs, "GET", "/device-plant/active/d1?at=2024-01-05T00:00:00.000Z", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, "GET", "/device-plant/active/d1?at=2024-01-10T00:00:00.000Z", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlantsMap(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)

	w := doJSON(rs, "POST", "/device-plant/associate", gin.H{
		"device_id":     "d1",
		"plant_name":    "Oak",
		"gps_latitude":  40.4168,
		"gps_longitude": -3.7038,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(rs, "POST", "/device-plant/associate", gin.H{
		"device_id":  "d2",
		"plant_name": "Elm",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(rs, "GET", "/api/plants/map", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count  int `json:"count"`
		Plants []struct {
			DeviceID     string   `json:"device_id"`
			PlantName    string   `json:"plant_name"`
			GPSLatitude  *float64 `json:"gps_latitude"`
			GPSLongitude *float64 `json:"gps_longitude"`
		} `json:"plants"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "d1", resp.Plants[0].DeviceID)
	assert.Equal(t, "Oak", resp.Plants[0].PlantName)
	require.NotNil(t, resp.Plants[0].GPSLatitude)
	assert.Equal(t, 40.4168, *resp.Plants[0].GPSLatitude)
}

func TestStorageErrorMapsTo500(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAssociation := mocks.NewMockIAssociation(ctrl)
	mockAssociation.
		EXPECT().
		GetActive(gomock.Eq("d1"), gomock.Any()).
		Return(nil, fmt.Errorf("%w: disk gone", plantmap.ErrStorage)).
		Times(1)

	pm := &plantmap.PlantMap{}
	pm.WithServices(plantmap.ServiceOpts{Association: mockAssociation})

	rs := &RestfulServer{Server: gin.Default(), PlantMap: pm}
	rs.Setup()

	w := doJSON(rs, "GET", "/device-plant/active/d1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPerDeviceLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)
	rs.RateLimiterStore = plantmap.NewRateLimiterStore(1000, 1000)

	w := doJSON(rs, "POST", "/devices/d9/limiter", gin.H{"rate": 1, "burst": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, "GET", "/device-plant/active/d9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(rs, "GET", "/device-plant/active/d9", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
