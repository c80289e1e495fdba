package handler

import (
    "context"
    "io"
    "net/http"
    "os"
    "path"
    "path/filepath"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/mzhydenko/airport-api/internal/model"
    "github.com/mzhydenko/airport-api/internal/repository"
)

// AirplaneHandler serves airplane CRUD plus the image upload endpoint.
type AirplaneHandler struct {
    Airplanes *repository.AirplaneRepo
    MediaRoot string // directory uploaded images are written under
}

func NewAirplaneHandler(a *repository.AirplaneRepo, mediaRoot string) *AirplaneHandler {
    return &AirplaneHandler{Airplanes: a, MediaRoot: mediaRoot}
}

type airplaneReq struct {
    Name           string `json:"name"`
    Rows           int64  `json:"rows"`
    SeatsInRow     int64  `json:"seats_in_row"`
    AirplaneTypeID uint64 `json:"airplane_type"`
}

// List returns all airplanes with type name and computed capacity.
func (h *AirplaneHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rows, err := h.Airplanes.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, rows)
}

// Create validates the seat grid and inserts a new airplane.
func (h *AirplaneHandler) Create(c echo.Context) error {
    var req airplaneReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)

    fe := model.FieldErrors{}
    if req.Name == "" {
        fe.Add("name", "this field is required")
    }
    if req.Rows < 1 {
        fe.Add("rows", "must be greater than or equal to 1")
    }
    if req.SeatsInRow < 1 {
        fe.Add("seats_in_row", "must be greater than or equal to 1")
    }
    if req.AirplaneTypeID == 0 {
        fe.Add("airplane_type", "this field is required")
    }
    if len(fe) > 0 {
        return validationError(c, fe)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    a := model.Airplane{
        Name:           req.Name,
        Rows:           uint32(req.Rows),
        SeatsInRow:     uint32(req.SeatsInRow),
        AirplaneTypeID: req.AirplaneTypeID,
    }
    if err := h.Airplanes.Create(ctx, &a); err != nil {
        if err == repository.ErrMissingReference {
            fe := model.FieldErrors{}
            fe.Add("airplane_type", "unknown airplane type")
            return validationError(c, fe)
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }

    detail, err := h.Airplanes.GetDetail(ctx, a.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusCreated, detail)
}

// Retrieve returns one airplane with its type embedded.
func (h *AirplaneHandler) Retrieve(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    detail, err := h.Airplanes.GetDetail(ctx, id)
    if err != nil {
        return notFoundOr500(c, err)
    }
    return c.JSON(http.StatusOK, detail)
}

// UploadImage accepts a multipart "image" file, stores it under the media
// root with a random filename and records the relative path on the airplane.
func (h *AirplaneHandler) UploadImage(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    fh, err := c.FormFile("image")
    if err != nil {
        fe := model.FieldErrors{}
        fe.Add("image", "this field is required")
        return validationError(c, fe)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    // 404 before touching the filesystem
    if _, err := h.Airplanes.GetDetail(ctx, id); err != nil {
        return notFoundOr500(c, err)
    }

    ext := strings.ToLower(filepath.Ext(fh.Filename))
    switch ext {
    case ".jpg", ".jpeg", ".png", ".gif", ".webp":
    default:
        fe := model.FieldErrors{}
        fe.Add("image", "unsupported file type")
        return validationError(c, fe)
    }

    dir := filepath.Join(h.MediaRoot, "airplanes")
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
    }
    name := uuid.NewString() + ext
    dstPath := filepath.Join(dir, name)

    src, err := fh.Open()
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
    }
    defer src.Close()
    dst, err := os.Create(dstPath)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
    }
    defer dst.Close()
    if _, err := io.Copy(dst, src); err != nil {
        _ = os.Remove(dstPath)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
    }

    // stored with forward slashes so the value is served directly under /media
    rel := path.Join("airplanes", name)
    if err := h.Airplanes.UpdateImage(ctx, id, rel); err != nil {
        _ = os.Remove(dstPath)
        return notFoundOr500(c, err)
    }

    return c.JSON(http.StatusOK, echo.Map{"id": id, "image": rel})
}
