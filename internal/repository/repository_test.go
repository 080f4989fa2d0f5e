package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskboard/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RepositoryTestSuite runs the repositories against an in-memory SQLite database
type RepositoryTestSuite struct {
	suite.Suite
	db     *gorm.DB
	boards BoardRepository
	tasks  TaskRepository
	users  UserRepository
}

func (suite *RepositoryTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.AutoMigrate(&models.User{}, &models.Board{}, &models.Task{}))

	suite.boards = NewBoardRepository(suite.db)
	suite.tasks = NewTaskRepository(suite.db)
	suite.users = NewUserRepository(suite.db)
}

func (suite *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RepositoryTestSuite) seed() (models.User, []models.Board) {
	user := models.User{FullName: "Ada Lovelace", Email: "ada@example.com"}
	suite.Require().NoError(suite.users.Create(&user))

	boards := []models.Board{{Name: "Core"}, {Name: "Empty"}}
	for i := range boards {
		suite.Require().NoError(suite.boards.Create(&boards[i]))
	}

	for _, task := range []models.Task{
		{Title: "one", Status: models.TaskStatusBacklog, Priority: models.TaskPriorityLow, BoardID: boards[0].ID, AssigneeID: user.ID},
		{Title: "two", Status: models.TaskStatusDone, Priority: models.TaskPriorityHigh, BoardID: boards[0].ID, AssigneeID: user.ID},
	} {
		task := task
		suite.Require().NoError(suite.tasks.Create(&task))
	}
	return user, boards
}

func (suite *RepositoryTestSuite) TestBoardsWithCounts() {
	_, boards := suite.seed()

	got, err := suite.boards.ListWithCounts()
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(boards[0].ID, got[0].Board.ID)
	suite.Equal(int64(2), got[0].TaskCount)
	suite.Equal(int64(0), got[1].TaskCount)
}

func (suite *RepositoryTestSuite) TestTaskListPreloadsAndFilters() {
	_, boards := suite.seed()

	tasks, err := suite.tasks.List(TaskFilter{BoardID: &boards[0].ID})
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 2)
	suite.Equal("one", tasks[0].Title)
	suite.Equal("Core", tasks[0].Board.Name)
	suite.Equal("Ada Lovelace", tasks[0].Assignee.FullName)

	done := models.TaskStatusDone
	tasks, err = suite.tasks.List(TaskFilter{Status: &done})
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal("two", tasks[0].Title)

	tasks, err = suite.tasks.List(TaskFilter{BoardID: &boards[1].ID})
	suite.Require().NoError(err)
	suite.Empty(tasks)
}

func (suite *RepositoryTestSuite) TestUpdateStatus() {
	suite.seed()

	suite.Require().NoError(suite.tasks.UpdateStatus(1, models.TaskStatusInProgress))
	task, err := suite.tasks.FindByID(1)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, task.Status)

	suite.ErrorIs(suite.tasks.UpdateStatus(99, models.TaskStatusDone), gorm.ErrRecordNotFound)
}

func (suite *RepositoryTestSuite) TestUpdateKeepsRelationsUntouched() {
	suite.seed()

	task, err := suite.tasks.FindByID(1, "Board")
	suite.Require().NoError(err)
	task.Title = "renamed"
	task.Board.Name = "should not be saved"
	suite.Require().NoError(suite.tasks.Update(task))

	board, err := suite.boards.FindByID(task.BoardID)
	suite.Require().NoError(err)
	suite.Equal("Core", board.Name)

	reloaded, err := suite.tasks.FindByID(1)
	suite.Require().NoError(err)
	suite.Equal("renamed", reloaded.Title)
}

func (suite *RepositoryTestSuite) TestUsersInIDOrder() {
	suite.seed()
	second := models.User{FullName: "Grace Hopper", Email: "grace@example.com"}
	suite.Require().NoError(suite.users.Create(&second))

	users, err := suite.users.List()
	suite.Require().NoError(err)
	suite.Require().Len(users, 2)
	suite.Equal("Ada Lovelace", users[0].FullName)

	_, err = suite.users.FindByID(42)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUpdateStatus_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec("UPDATE `tasks` SET `status`=.*WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `tasks` SET `status`=").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateStatus(7, models.TaskStatusDone))
	assert.ErrorIs(t, repo.UpdateStatus(8, models.TaskStatusDone), gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "status", "priority", "board_id", "assignee_id"}).
		AddRow(3, "Ship it", "Done", "High", 1, 2)
	mock.ExpectQuery("SELECT \\* FROM `tasks` WHERE `tasks`.`id` = \\?").WillReturnRows(rows)

	task, err := repo.FindByID(3)
	require.NoError(t, err)
	assert.Equal(t, "Ship it", task.Title)
	assert.Equal(t, models.TaskStatusDone, task.Status)
	assert.Equal(t, uint64(2), task.AssigneeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithCounts_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBoardRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `boards`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Core").AddRow(2, "Ops"))
	mock.ExpectQuery("SELECT board_id, COUNT\\(\\*\\) AS count FROM `tasks`.*GROUP BY").
		WillReturnRows(sqlmock.NewRows([]string{"board_id", "count"}).AddRow(2, 4))

	boards, err := repo.ListWithCounts()
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, int64(0), boards[0].TaskCount)
	assert.Equal(t, int64(4), boards[1].TaskCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
