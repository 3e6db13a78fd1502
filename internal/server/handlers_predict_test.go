package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-portal/internal/predict"
	"github.com/jonathan/job-portal/internal/suggest"
	"github.com/jonathan/job-portal/internal/types"
)

func TestPredict(t *testing.T) {
	dict := predict.NewDictionary()
	dict.AddWord("skills", "developer", 3)
	ts := newTestServer(t, withPredictor(predict.NewService(nil, nil, predict.WithDictionary(dict))))

	w := ts.do(t, http.MethodPost, "/predict", types.PredictRequest{Field: "skills", Text: "develop"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "developer", decodeBody[types.PredictResponse](t, w).Suggestion)

	w = ts.do(t, http.MethodPost, "/predict", types.PredictRequest{Field: "skills", Text: ""}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", decodeBody[types.PredictResponse](t, w).Suggestion)
}

func TestPredict_Failure(t *testing.T) {
	failing := suggest.PredictorFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("dictionary offline")
	})
	ts := newTestServer(t, withPredictor(failing))

	w := ts.do(t, http.MethodPost, "/predict", types.PredictRequest{Field: "skills", Text: "go"}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = ts.do(t, http.MethodPost, "/predict", `{`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
