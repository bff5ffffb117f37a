package handler

import (
	"strconv"
	"time"

	"notebook/apperror"
	"notebook/dto"
	"notebook/middleware"
	"notebook/model"
	"notebook/usecase"
	"notebook/utils"

	"github.com/gin-gonic/gin"
)

type NotesHandler struct {
	notes *usecase.NotesService
}

func NewNotesHandler(notes *usecase.NotesService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// parseNoteFilter reads the optional listing parameters q, status, favorite,
// date and sort.
func parseNoteFilter(c *gin.Context) (model.NoteFilter, error) {
	filter := model.NoteFilter{
		Query:  c.Query("q"),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	}

	if raw := c.Query("favorite"); raw != "" {
		favorite, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperror.Validation("favorite must be true or false")
		}
		filter.FavoritesOnly = favorite
	}

	if raw := c.Query("date"); raw != "" {
		day, err := dto.ParseDate(raw)
		if err != nil {
			return filter, apperror.Validation("date must be YYYY-MM-DD")
		}
		day = day.Truncate(24 * time.Hour)
		filter.CreatedOn = &day
	}

	return filter, nil
}

func (h *NotesHandler) List(c *gin.Context) {
	filter, err := parseNoteFilter(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	notes, err := h.notes.List(c.Request.Context(), middleware.CurrentUserID(c), filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "", gin.H{"notes": dto.ToNoteResponses(notes)})
}

func (h *NotesHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	scheduleDate, err := req.ScheduleTime()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	note, err := h.notes.Create(c.Request.Context(), middleware.CurrentUserID(c), usecase.CreateNoteInput{
		Title:        req.Title,
		Description:  req.Description,
		ScheduleDate: scheduleDate,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Created(c, "Note created successfully", gin.H{"note": dto.ToNoteResponse(note)})
}

func (h *NotesHandler) Get(c *gin.Context) {
	note, err := h.notes.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "", gin.H{"note": dto.ToNoteResponse(note)})
}

// Update reports a missing or foreign note before looking at the body.
func (h *NotesHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	callerID := middleware.CurrentUserID(c)
	noteID := c.Param("id")

	if _, err := h.notes.Get(ctx, callerID, noteID); err != nil {
		utils.Fail(c, err)
		return
	}

	var req dto.UpdateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	note, err := h.notes.Edit(ctx, callerID, noteID, patch)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "Note updated successfully", gin.H{"note": dto.ToNoteResponse(note)})
}

func (h *NotesHandler) ToggleCompletion(c *gin.Context) {
	note, err := h.notes.ToggleCompletion(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "", gin.H{"note": dto.ToNoteResponse(note)})
}

func (h *NotesHandler) ToggleFavorite(c *gin.Context) {
	note, err := h.notes.ToggleFavorite(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "", gin.H{"note": dto.ToNoteResponse(note)})
}

func (h *NotesHandler) Delete(c *gin.Context) {
	noteID := c.Param("id")
	if err := h.notes.Delete(c.Request.Context(), middleware.CurrentUserID(c), noteID); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "Note deleted successfully", gin.H{"id": noteID})
}
