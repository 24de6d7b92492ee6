package measurement

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMeasurementService é um mock para a interface MeasurementService
type MockMeasurementService struct {
	mock.Mock
}

func (m *MockMeasurementService) Record(ctx context.Context, req MeasurementRequest) (*Measurement, error) {
	args := m.Called(ctx, req)
	var measurement *Measurement
	if v := args.Get(0); v != nil {
		measurement = v.(*Measurement)
	}
	return measurement, args.Error(1)
}

func (m *MockMeasurementService) ListByDevice(ctx context.Context, deviceID int) ([]Measurement, error) {
	args := m.Called(ctx, deviceID)
	var list []Measurement
	if v := args.Get(0); v != nil {
		list = v.([]Measurement)
	}
	return list, args.Error(1)
}

func newTestRouter(svc MeasurementService) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r, NewMeasurementHandler(svc))
	return r
}

func postJSON(r http.Handler, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/api/mediciones", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMeasurementHandler_Create_Success(t *testing.T) {
	svc := new(MockMeasurementService)
	stored := &Measurement{ID: "med-1", DeviceID: 4, Current: 1.234, Voltage: 121.5, Power: 149.93, Timestamp: fixedNow}
	svc.On("Record", mock.Anything, mock.MatchedBy(func(req MeasurementRequest) bool {
		return req.DeviceID == 4 && *req.Current == 1.234 && *req.Voltage == 121.5 && *req.Power == 149.93
	})).Return(stored, nil).Once()

	w := postJSON(newTestRouter(svc), `{"id_dispositivo":4,"corriente":1.234,"voltaje":121.5,"potencia":149.93}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		Success bool        `json:"success"`
		Data    Measurement `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, *stored, body.Data)
	svc.AssertExpectations(t)
}

func TestMeasurementHandler_Create_ZeroFloatsAccepted(t *testing.T) {
	svc := new(MockMeasurementService)
	svc.On("Record", mock.Anything, mock.Anything).Return(&Measurement{ID: "med-0", DeviceID: 4}, nil).Once()

	w := postJSON(newTestRouter(svc), `{"id_dispositivo":4,"corriente":0,"voltaje":0,"potencia":0}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestMeasurementHandler_Create_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"InvalidJSON", `{"invalid":`},
		{"MissingDeviceID", `{"corriente":1,"voltaje":120,"potencia":120}`},
		{"ZeroDeviceID", `{"id_dispositivo":0,"corriente":1,"voltaje":120,"potencia":120}`},
		{"MissingPower", `{"id_dispositivo":4,"corriente":1,"voltaje":120}`},
		{"NullCurrent", `{"id_dispositivo":4,"corriente":null,"voltaje":120,"potencia":120}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMeasurementService)
			w := postJSON(newTestRouter(svc), tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"success":false,"message":"id_dispositivo, corriente, voltaje y potencia son obligatorios"}`, w.Body.String())
			svc.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		})
	}
}

func TestMeasurementHandler_Create_StoreError(t *testing.T) {
	svc := new(MockMeasurementService)
	svc.On("Record", mock.Anything, mock.Anything).Return(nil, errors.New("redis fora do ar")).Once()

	w := postJSON(newTestRouter(svc), `{"id_dispositivo":4,"corriente":1,"voltaje":120,"potencia":120}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Error al crear medición","error":"redis fora do ar"}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestMeasurementHandler_ListByDevice(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockMeasurementService)
		list := []Measurement{{ID: "b", DeviceID: 4, Power: 200, Timestamp: fixedNow}, {ID: "a", DeviceID: 4, Power: 100, Timestamp: fixedNow}}
		svc.On("ListByDevice", mock.Anything, 4).Return(list, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/mediciones/dispositivo/4", nil)
		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Success bool          `json:"success"`
			Data    []Measurement `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, list, body.Data)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidID", func(t *testing.T) {
		svc := new(MockMeasurementService)
		req, _ := http.NewRequest(http.MethodGet, "/api/mediciones/dispositivo/abc", nil)
		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "ListByDevice", mock.Anything, mock.Anything)
	})

	t.Run("StoreError", func(t *testing.T) {
		svc := new(MockMeasurementService)
		svc.On("ListByDevice", mock.Anything, 4).Return(nil, errors.New("boom")).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/mediciones/dispositivo/4", nil)
		w := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Error al obtener las mediciones","error":"boom"}`, w.Body.String())
	})
}
