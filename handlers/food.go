package handlers

import (
	"database/sql"
	"errors"
	"math/rand"
	"net/http"

	"go.uber.org/zap"

	"github.com/camden-git/whattoeat/database"
	"github.com/camden-git/whattoeat/models"
)

const (
	NoFoodsMessage    = "등록된 음식이 없습니다."
	StoreErrorMessage = "오류: 음식 목록을 가져올 수 없습니다. 데이터베이스 초기화가 필요할 수 있습니다."
)

type FoodHandler struct {
	DB  *sql.DB
	Log *zap.Logger

	// Pick returns an index in [0, n). Defaults to a uniform random choice.
	Pick func(n int) int
}

func NewFoodHandler(db *sql.DB, log *zap.Logger) *FoodHandler {
	return &FoodHandler{DB: db, Log: log, Pick: rand.Intn}
}

func (fh *FoodHandler) pick(n int) int {
	if fh.Pick == nil {
		return rand.Intn(n)
	}
	return fh.Pick(n)
}

func (fh *FoodHandler) Index(w http.ResponseWriter, r *http.Request) {
	renderPage(w, fh.Log, "index.html", nil)
}

func (fh *FoodHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	recommendation := NoFoodsMessage

	foods, err := database.ListFoods(r.Context(), fh.DB)
	switch {
	case errors.Is(err, database.ErrFoodsTableMissing):
		fh.Log.Warn("foods table not found, the database might not be initialized")
		recommendation = StoreErrorMessage
	case err != nil:
		fh.Log.Error("failed to list foods for recommendation", zap.Error(err))
		recommendation = StoreErrorMessage
	case len(foods) == 0:
		fh.Log.Info("no foods found for recommendation")
	default:
		recommendation = foods[fh.pick(len(foods))].Name
	}

	renderPage(w, fh.Log, "recommend.html", struct{ Recommendation string }{recommendation})
}

func (fh *FoodHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := database.ListFoods(r.Context(), fh.DB)
	if err != nil {
		if errors.Is(err, database.ErrFoodsTableMissing) {
			fh.Log.Warn("foods table not found, the database might not be initialized")
		} else {
			fh.Log.Error("failed to list foods", zap.Error(err))
		}
		foods = []models.Food{}
	}

	renderPage(w, fh.Log, "foods.html", struct {
		Foods        []models.Food
		EmptyMessage string
	}{foods, NoFoodsMessage})
}

func (fh *FoodHandler) AddFoodForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, fh.Log, "add.html", nil)
}

// AddFood always redirects back to the list; failures are only logged.
func (fh *FoodHandler) AddFood(w http.ResponseWriter, r *http.Request) {
	defer http.Redirect(w, r, "/foods", http.StatusFound)

	form, err := parseAddFoodForm(r)
	if err != nil {
		fh.Log.Info("ignoring add food submission", zap.Error(err))
		return
	}

	inserted, err := database.InsertFoodIfAbsent(r.Context(), fh.DB, form.Name)
	switch {
	case err != nil:
		fh.Log.Error("failed to add food", zap.String("name", form.Name), zap.Error(err))
	case inserted:
		fh.Log.Info("added food", zap.String("name", form.Name))
	default:
		fh.Log.Info("food already exists and was ignored", zap.String("name", form.Name))
	}
}

// DeleteSelectedFoods always redirects back to the list; failures are only logged.
func (fh *FoodHandler) DeleteSelectedFoods(w http.ResponseWriter, r *http.Request) {
	defer http.Redirect(w, r, "/foods", http.StatusFound)

	form, err := parseDeleteForm(r)
	if err != nil {
		fh.Log.Warn("rejected delete submission", zap.Error(err))
		return
	}
	if len(form.IDs) == 0 {
		return
	}

	deleted, err := database.DeleteFoodsByIDs(r.Context(), fh.DB, form.IDs)
	if err != nil {
		fh.Log.Error("failed to delete selected foods", zap.Int64s("ids", form.IDs), zap.Error(err))
		return
	}
	fh.Log.Info("deleted selected foods", zap.Int64("count", deleted))
}
