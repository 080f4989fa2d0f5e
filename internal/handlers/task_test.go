package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskboard/internal/apiclient"
	"github.com/yukikurage/taskboard/internal/database"
	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TrackerAPITestSuite drives the reference tracker API over an in-memory SQLite database
type TrackerAPITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *TrackerAPITestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	suite.Require().NoError(err)

	// One connection, so the httptest server sees the same in-memory database
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = suite.db.AutoMigrate(&models.User{}, &models.Board{}, &models.Task{})
	suite.Require().NoError(err)
	suite.Require().NoError(database.Seed(suite.db))

	gin.SetMode(gin.TestMode)
	log, _ := logtest.NewNullLogger()
	suite.router = NewRouter(suite.db, log)
}

// TearDownTest runs after each test
func (suite *TrackerAPITestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TrackerAPITestSuite) request(method, url string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TrackerAPITestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (suite *TrackerAPITestSuite) TestListBoards() {
	w := suite.request(http.MethodGet, "/api/v1/boards", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Data []dto.BoardDTO `json:"data"`
	}
	suite.decode(w, &resp)
	suite.Require().Len(resp.Data, 2)
	suite.Equal("Redesign", resp.Data[0].Name)
	suite.Equal(int64(3), resp.Data[0].TaskCount)
	suite.Equal(int64(2), resp.Data[1].TaskCount)
}

func (suite *TrackerAPITestSuite) TestGetBoardTasks() {
	w := suite.request(http.MethodGet, "/api/v1/boards/2", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Data []dto.TaskDTO `json:"data"`
	}
	suite.decode(w, &resp)
	suite.Require().Len(resp.Data, 2)
	suite.Equal("Upgrade database", resp.Data[0].Title)
	suite.Equal("Alan Turing", resp.Data[0].Assignee.FullName)
	suite.Equal(resp.Data[0].Assignee.ID, resp.Data[0].AssigneeID)

	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, "/api/v1/boards/99", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.request(http.MethodGet, "/api/v1/boards/abc", nil).Code)
}

func (suite *TrackerAPITestSuite) TestGetTask() {
	w := suite.request(http.MethodGet, "/api/v1/tasks/1", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Data dto.TaskDetailsDTO `json:"data"`
	}
	suite.decode(w, &resp)
	suite.Equal("Draft wireframes", resp.Data.Title)
	suite.Equal("Redesign", resp.Data.BoardName)

	w = suite.request(http.MethodGet, "/api/v1/tasks/999", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeNotFound, apiErr.Code)

	suite.Equal(http.StatusBadRequest, suite.request(http.MethodGet, "/api/v1/tasks/nope", nil).Code)
}

func (suite *TrackerAPITestSuite) TestCreateTask() {
	body := dto.TaskFieldsDTO{Title: "New", BoardID: 1, AssigneeID: 2}
	w := suite.request(http.MethodPost, "/api/v1/tasks/create", body)
	suite.Equal(http.StatusCreated, w.Code)

	var resp struct {
		Data dto.CreatedDTO `json:"data"`
	}
	suite.decode(w, &resp)
	suite.Equal(uint64(6), resp.Data.ID)

	var task models.Task
	suite.Require().NoError(suite.db.First(&task, resp.Data.ID).Error)
	suite.Equal(models.TaskStatusBacklog, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
}

func (suite *TrackerAPITestSuite) TestCreateTask_Errors() {
	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"malformed body", "not an object", http.StatusBadRequest},
		{"blank title", dto.TaskFieldsDTO{BoardID: 1, AssigneeID: 1}, http.StatusBadRequest},
		{"unknown board", dto.TaskFieldsDTO{Title: "x", BoardID: 9, AssigneeID: 1}, http.StatusNotFound},
		{"unknown user", dto.TaskFieldsDTO{Title: "x", BoardID: 1, AssigneeID: 9}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.request(http.MethodPost, "/api/v1/tasks/create", tt.body)
			suite.Equal(tt.status, w.Code)
		})
	}
}

func (suite *TrackerAPITestSuite) TestUpdateTaskStatus() {
	w := suite.request(http.MethodPut, "/api/v1/tasks/updateStatus/3", dto.StatusUpdateDTO{Status: models.TaskStatusDone})
	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]string
	suite.decode(w, &resp)
	suite.Equal("Status updated successfully", resp["message"])

	var task models.Task
	suite.Require().NoError(suite.db.First(&task, 3).Error)
	suite.Equal(models.TaskStatusDone, task.Status)

	w = suite.request(http.MethodPut, "/api/v1/tasks/updateStatus/3", dto.StatusUpdateDTO{Status: "Archived"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPut, "/api/v1/tasks/updateStatus/77", dto.StatusUpdateDTO{Status: models.TaskStatusDone})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TrackerAPITestSuite) TestUpdateTask() {
	body := dto.TaskFieldsDTO{Title: "Renamed", Description: "now with words", BoardID: 1, AssigneeID: 3, Priority: models.TaskPriorityLow}
	w := suite.request(http.MethodPut, "/api/v1/tasks/update/1", body)
	suite.Equal(http.StatusOK, w.Code)

	var task models.Task
	suite.Require().NoError(suite.db.First(&task, 1).Error)
	suite.Equal("Renamed", task.Title)
	suite.Equal(uint64(3), task.AssigneeID)
	suite.Equal(models.TaskStatusDone, task.Status)

	suite.Equal(http.StatusNotFound, suite.request(http.MethodPut, "/api/v1/tasks/update/50", body).Code)
}

// TestClientRoundTrip runs the API client against the reference server
func (suite *TrackerAPITestSuite) TestClientRoundTrip() {
	server := httptest.NewServer(suite.router)
	defer server.Close()

	ctx := context.Background()
	log, _ := logtest.NewNullLogger()
	client := apiclient.New(server.URL+"/api/v1", apiclient.WithLogger(log))

	boards, err := client.ListBoards(ctx)
	suite.Require().NoError(err)
	suite.Len(boards, 2)

	tasks, err := client.ListBoardTasks(ctx, boards[0].ID)
	suite.Require().NoError(err)
	suite.Len(tasks, 3)

	id, err := client.CreateTask(ctx, dto.TaskFieldsDTO{Title: "From client", BoardID: boards[0].ID, AssigneeID: 1})
	suite.Require().NoError(err)

	msg, err := client.UpdateTaskStatus(ctx, id, models.TaskStatusInProgress)
	suite.Require().NoError(err)
	suite.Equal("Status updated successfully", msg)

	details, err := client.GetTask(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, details.Status)
	suite.Equal("Ada Lovelace", details.Assignee.FullName)

	_, err = client.GetTask(ctx, 999)
	suite.True(apierrors.IsNotFound(err))

	_, err = client.CreateTask(ctx, dto.TaskFieldsDTO{Title: "x", BoardID: 42, AssigneeID: 1})
	suite.True(apierrors.IsNotFound(err))
	suite.EqualError(err, "board or user not found")

	all, err := client.ListTasks(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 6)

	users, err := client.ListUsers(ctx)
	suite.Require().NoError(err)
	suite.Len(users, 3)
}

func TestTrackerAPITestSuite(t *testing.T) {
	suite.Run(t, new(TrackerAPITestSuite))
}
