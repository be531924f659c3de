package article

import (
	"log/slog"
	"net/http"

	"helpcenter/internal/common/pagination"
	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/pathutil"
	"helpcenter/internal/handler/http/respond"
	artUC "helpcenter/internal/usecase/article"
)

// ListHandler serves the paginated admin list.
//
//	GET /admin/articles?page=2&limit=20&status=draft&category_id=3
type ListHandler struct {
	Svc           Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	categoryID, err := pathutil.QueryInt(r, "category_id", 0)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	filter := artUC.ListFilter{
		Status:     entity.Status(r.URL.Query().Get("status")),
		CategoryID: int64(categoryID),
	}
	result, err := h.Svc.ListPaginated(r.Context(), filter, params)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WarnContext(r.Context(), "list articles failed",
				slog.Int("page", params.Page),
				slog.Int("limit", params.Limit),
				slog.Any("error", err))
		}
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, pagination.NewResponse(ToSummaries(result.Data), result.Pagination))
}
