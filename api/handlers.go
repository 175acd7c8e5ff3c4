package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"lifeboard-api/domain"
)

const subjectContextKey = "auth.subject"

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, store Storage, auth *Auth, deduper Deduper, logger *log.Logger) {
	e.GET("/healthz", healthz(store))
	e.POST("/api/login", login(auth))

	g := e.Group("/api", requireSuperuser(auth))
	g.GET("/board", getBoard(store, logger))
	g.POST("/board/move", moveTask(store, deduper))

	g.GET("/tasks", listTasks(store))
	g.POST("/tasks", createTask(store, deduper))
	g.GET("/tasks/:id", getTask(store))
	g.PUT("/tasks/:id", updateTask(store))
	g.POST("/tasks/:id/comments", createComment(store))

	g.GET("/projects", listProjects(store))
	g.POST("/projects", createProject(store))
	g.GET("/projects/:id", getProject(store))
	g.POST("/projects/:id/archive", archiveProject(store))
	g.GET("/tags", listTags(store))
	g.POST("/tags", createTag(store))

	g.GET("/contacts", listContacts(store))
	g.POST("/contacts", createContact(store))
	g.GET("/contacts/:slug", contactDetail(store))
	g.POST("/contacts/:slug/touchpoints", createTouchpoint(store, deduper))

	g.GET("/journal", listJournalEntries(store))
	g.POST("/journal", createJournalEntry(store))
	g.GET("/moods", listMoodEntries(store))
	g.POST("/moods", createMoodEntry(store))
}

// requireSuperuser authenticates the bearer token and checks the subject
// against the configured superuser. The subject travels on the request
// context, not in ambient state.
func requireSuperuser(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, err := auth.SubjectFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
			}
			if subject != auth.Superuser() {
				return c.JSON(http.StatusForbidden, errorResponse{Error: "superuser required"})
			}
			c.Set(subjectContextKey, subject)
			return next(c)
		}
	}
}

func healthz(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "storage unreachable"})
		}
		return c.NoContent(http.StatusOK)
	}
}

func login(auth *Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		if !auth.VerifyPassword(req.Password) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		token, expiresAt, err := auth.IssueSession(time.Now())
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "could not issue session"})
		}
		return c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
	}
}

func getBoard(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics := newBoardRequestMetrics(logger)
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fetchStart := time.Now()
		tasks, fetchErr := store.BoardTasks(ctx)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = c.JSON(http.StatusInternalServerError, errorResponse{Error: fetchErr.Error()})
			return err
		}
		metrics.SetTasksReturned(len(tasks))

		assembleStart := time.Now()
		columns := domain.AssembleBoard(tasks, time.Now())
		metrics.ObserveAssemble(time.Since(assembleStart))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, boardResponse{Columns: columns})
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func moveTask(store Storage, deduper Deduper) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var req moveRequest
		if err := decodeBody(c, &req); err != nil {
			return moveRejected(c, store, "invalid body")
		}
		if req.TaskID == "" {
			return moveRejected(c, store, "taskId is required")
		}
		if req.Status == "" {
			return moveRejected(c, store, "status is required")
		}
		if !domain.BoardVisible(req.Status) {
			return moveRejected(c, store, "status is not movable on the board")
		}

		duplicate, key, err := dedupe(c, deduper)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "idempotency check failed"})
		}
		if duplicate {
			return c.JSON(http.StatusOK, moveResponse{Duplicate: true})
		}

		task, err := store.MoveTask(ctx, req.TaskID, req.Status, time.Now().UTC())
		if err != nil {
			releaseDedupe(c, deduper, key)
			if errors.Is(err, domain.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, moveResponse{Task: &task})
	}
}

// moveRejected answers an invalid move with the current board attached so
// the client can re-render instead of blanking.
func moveRejected(c echo.Context, store Storage, msg string) error {
	resp := moveResponse{Error: msg}
	if tasks, err := store.BoardTasks(c.Request().Context()); err == nil {
		resp.Board = domain.AssembleBoard(tasks, time.Now())
	} else {
		c.Logger().Error(err)
	}
	return c.JSON(http.StatusBadRequest, resp)
}

func listTasks(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := domain.TaskFilter{
			Status:    c.QueryParam("status"),
			ProjectID: c.QueryParam("project"),
			Tag:       c.QueryParam("tag"),
		}
		if filter.Status != "" && !domain.ValidStatus(filter.Status) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown status"})
		}
		tasks, err := store.ListTasks(c.Request().Context(), filter)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, map[string][]domain.Task{"tasks": tasks})
	}
}

func createTask(store Storage, deduper Deduper) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taskRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		if req.Status == "" {
			req.Status = domain.StatusTodo
		}
		if req.Priority == 0 {
			req.Priority = domain.PriorityNormal
		}
		if req.Energy == "" {
			req.Energy = domain.EnergyMedium
		}
		errs := domain.ValidationError{}
		if req.Title == "" {
			errs["title"] = "title must not be empty"
		}
		if !domain.ValidStatus(req.Status) {
			errs["status"] = "unknown status"
		}
		if !domain.ValidPriority(req.Priority) {
			errs["priority"] = "priority must be between 1 and 4"
		}
		if !domain.ValidEnergy(req.Energy) {
			errs["energy"] = "unknown energy level"
		}
		if len(errs) > 0 {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Errors: errs})
		}

		duplicate, key, err := dedupe(c, deduper)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "idempotency check failed"})
		}
		if duplicate {
			return c.JSON(http.StatusOK, map[string]bool{"duplicate": true})
		}

		now := time.Now().UTC()
		task := domain.Task{
			ID:              uuid.NewString(),
			Title:           req.Title,
			Description:     req.Description,
			Status:          req.Status,
			Priority:        req.Priority,
			DueDate:         req.DueDate,
			EstimateMinutes: req.EstimateMinutes,
			Energy:          req.Energy,
			ProjectID:       req.ProjectID,
			CreatedAt:       now,
			UpdatedAt:       now,
			Tags:            req.Tags,
		}
		created, err := store.CreateTask(c.Request().Context(), task)
		if err != nil {
			releaseDedupe(c, deduper, key)
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusCreated, created)
	}
}

func getTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		task, err := store.GetTask(ctx, c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		comments, err := store.ListComments(ctx, task.ID)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, taskDetailResponse{Task: task, Comments: comments})
	}
}

func updateTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var upd domain.TaskUpdate
		if err := decodeBody(c, &upd); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		if errs := upd.Validate(); errs != nil {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Errors: errs})
		}
		task, err := store.UpdateTask(c.Request().Context(), c.Param("id"), upd, time.Now().UTC())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, task)
	}
}

func createComment(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req commentRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		if req.Content == "" {
			return c.JSON(http.StatusUnprocessableEntity,
				errorResponse{Errors: domain.ValidationError{"content": "content must not be empty"}})
		}
		comment := domain.Comment{
			ID:        uuid.NewString(),
			TaskID:    c.Param("id"),
			Content:   req.Content,
			CreatedAt: time.Now().UTC(),
		}
		created, err := store.CreateComment(c.Request().Context(), comment)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusCreated, created)
	}
}

func listProjects(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		projects, err := store.ListProjects(c.Request().Context())
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, map[string][]domain.Project{"projects": projects})
	}
}

func createProject(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req projectRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		now := time.Now().UTC()
		project := domain.Project{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if errs := project.Validate(); errs != nil {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Errors: errs})
		}
		created, err := store.CreateProject(c.Request().Context(), project)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusCreated, created)
	}
}

func getProject(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		project, err := store.GetProject(ctx, c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse{Error: "project not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		tasks, err := store.ListTasks(ctx, domain.TaskFilter{ProjectID: project.ID})
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]any{"project": project, "tasks": tasks})
	}
}

func archiveProject(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		project, err := store.ArchiveProject(c.Request().Context(), c.Param("id"), time.Now().UTC())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse{Error: "project not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, project)
	}
}

func listTags(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tags, err := store.ListTags(c.Request().Context())
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, map[string][]domain.Tag{"tags": tags})
	}
}

func createTag(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req tagRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		tag := domain.Tag{Name: req.Name, Color: req.Color, CreatedAt: time.Now().UTC()}
		if errs := tag.Validate(); errs != nil {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Errors: errs})
		}
		created, err := store.CreateTag(c.Request().Context(), tag)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusCreated, created)
	}
}

func listContacts(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		today := domain.Today()
		overviews, err := store.ContactOverviews(c.Request().Context(), today)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		items := make([]contactItem, 0, len(overviews))
		for i := range overviews {
			items = append(items, newContactItem(overviews[i], today))
		}
		return c.JSON(http.StatusOK, contactListResponse{Contacts: items, Today: today})
	}
}

func createContact(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req contactRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		if req.Priority == 0 {
			req.Priority = 1
		}
		if req.Timezone == "" {
			req.Timezone = "America/New_York"
		}
		if req.CheckInFrequencyDays == 0 {
			req.CheckInFrequencyDays = 30
		}
		now := time.Now().UTC()
		contact := domain.Contact{
			Slug:                 req.Slug,
			Name:                 req.Name,
			Priority:             req.Priority,
			Relationship:         req.Relationship,
			Birthday:             req.Birthday,
			Notes:                req.Notes,
			Timezone:             req.Timezone,
			PreferredChannel:     req.PreferredChannel,
			CheckInFrequencyDays: req.CheckInFrequencyDays,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if errs := contact.Validate(); errs != nil {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Errors: errs})
		}
		created, err := store.CreateContact(c.Request().Context(), contact)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusCreated, created)
	}
}

func contactDetail(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		today := domain.Today()
		overview, err := store.GetContactOverview(ctx, c.Param("slug"), today)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse{Error: "contact not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		touchpoints, err := store.ListTouchpoints(ctx, overview.Slug)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, contactDetailResponse{
			Contact:     newContactItem(overview, today),
			Touchpoints: touchpoints,
			Today:       today,
		})
	}
}

func createTouchpoint(store Storage, deduper Deduper) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		var req touchpointRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		tp := domain.Touchpoint{
			ID:          uuid.NewString(),
			ContactSlug: c.Param("slug"),
			Channel:     req.Channel,
			Sentiment:   req.Sentiment,
			Notes:       req.Notes,
			CreatedAt:   time.Now().UTC(),
		}
		if req.Date != nil {
			tp.Date = *req.Date
		}
		if errs := tp.Validate(); errs != nil {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Errors: errs})
		}

		duplicate, key, err := dedupe(c, deduper)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "idempotency check failed"})
		}
		if duplicate {
			return c.JSON(http.StatusOK, map[string]bool{"duplicate": true})
		}

		created, err := store.CreateTouchpoint(ctx, tp)
		if err != nil {
			releaseDedupe(c, deduper, key)
			if errors.Is(err, domain.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse{Error: "contact not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}

		// Re-read the overview so the response reflects the advanced cache
		// and the refreshed strength.
		today := domain.Today()
		overview, err := store.GetContactOverview(ctx, created.ContactSlug, today)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusCreated, map[string]any{"touchpoint": created})
		}
		return c.JSON(http.StatusCreated, map[string]any{
			"touchpoint": created,
			"contact":    newContactItem(overview, today),
		})
	}
}

func listJournalEntries(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := store.ListJournalEntries(c.Request().Context())
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		items := make([]journalItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, journalItem{JournalEntry: e, AgeHuman: humanize.Time(e.Date.Time())})
		}
		return c.JSON(http.StatusOK, map[string][]journalItem{"entries": items})
	}
}

func createJournalEntry(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req journalEntryRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		now := time.Now().UTC()
		entry := domain.JournalEntry{
			ID:              uuid.NewString(),
			Title:           req.Title,
			ContentMarkdown: req.ContentMarkdown,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if req.Date != nil {
			entry.Date = *req.Date
		}
		if errs := entry.Validate(); errs != nil {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Errors: errs})
		}
		created, err := store.CreateJournalEntry(c.Request().Context(), entry)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusCreated, created)
	}
}

func listMoodEntries(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := store.ListMoodEntries(c.Request().Context())
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, map[string][]domain.MoodEntry{"entries": entries})
	}
}

func createMoodEntry(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req moodEntryRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		now := time.Now().UTC()
		entry := domain.MoodEntry{
			ID:         uuid.NewString(),
			RecordedAt: now,
			Mood:       req.Mood,
			Notes:      req.Notes,
			CreatedAt:  now,
		}
		if errs := entry.Validate(); errs != nil {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Errors: errs})
		}
		created, err := store.CreateMoodEntry(c.Request().Context(), entry)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusCreated, created)
	}
}

// --- helpers ---

func decodeBody(c echo.Context, v any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func newContactItem(o domain.ContactOverview, today domain.Date) contactItem {
	o.AttachStrength(today)
	item := contactItem{ContactOverview: o}
	if o.Strength.LastTouchpoint != nil {
		item.LastContactedHuman = humanize.Time(o.Strength.LastTouchpoint.Time())
	}
	return item
}

// dedupe records the request's idempotency key when one is supplied.
// duplicate is true when the key was already seen.
func dedupe(c echo.Context, deduper Deduper) (duplicate bool, key string, err error) {
	if deduper == nil {
		return false, "", nil
	}
	key = c.Request().Header.Get(idempotencyHeader)
	if key == "" {
		return false, "", nil
	}
	subject, _ := c.Get(subjectContextKey).(string)
	added, err := deduper.Add(c.Request().Context(), subject, key)
	if err != nil {
		return false, "", err
	}
	return !added, key, nil
}

// releaseDedupe frees a recorded key after a failed mutation so the client
// may retry with it.
func releaseDedupe(c echo.Context, deduper Deduper, key string) {
	if deduper == nil || key == "" {
		return
	}
	subject, _ := c.Get(subjectContextKey).(string)
	if err := deduper.Remove(context.Background(), subject, key); err != nil {
		c.Logger().Errorf("dedupe rollback failed: %v", err)
	}
}
