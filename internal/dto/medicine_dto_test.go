package dto

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindCreateMedicine(t *testing.T, body string) (CreateMedicineRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req CreateMedicineRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func createMedicineBody(unitPrice string) string {
	return fmt.Sprintf(
		`{"name":"Amoxicillin","category_id":%q,"type_id":%q,"unit":"capsule","unit_price":%s}`,
		uuid.NewString(), uuid.NewString(), unitPrice)
}

// A zero price is a legal value; only an absent or negative one is rejected.
func TestCreateMedicineRequestAcceptsZeroPrice(t *testing.T) {
	req, err := bindCreateMedicine(t, createMedicineBody("0"))
	require.NoError(t, err)
	require.NotNil(t, req.UnitPrice)
	assert.Equal(t, 0.0, *req.UnitPrice)
}

func TestCreateMedicineRequestMissingPrice(t *testing.T) {
	_, err := bindCreateMedicine(t,
		fmt.Sprintf(`{"name":"Amoxicillin","category_id":%q,"type_id":%q,"unit":"capsule"}`,
			uuid.NewString(), uuid.NewString()))
	assert.Error(t, err)
}

func TestCreateMedicineRequestNegativePrice(t *testing.T) {
	_, err := bindCreateMedicine(t, createMedicineBody("-1.5"))
	assert.Error(t, err)
}
