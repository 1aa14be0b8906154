package sqlite

import (
	"database/sql"

	"github.com/sakif/taskboard/internal/model"
)

// userTaskRow is one flat row of the users→tasks LEFT OUTER JOIN: the user
// columns repeated per task, and the task columns as Null* types because a
// user with no tasks produces exactly one row with them all NULL.
type userTaskRow struct {
	user     model.User
	taskID   sql.NullString
	taskName sql.NullString
	taskDone sql.NullInt64
}

// assembleUserTasks folds flat join rows into nested entries: one entry per
// distinct user id, tasks accumulated per user.
//
// ORDERING CONTRACT:
//   - users appear in order of FIRST appearance in the row stream;
//   - within a user, tasks keep the order their rows arrived in.
//
// A row whose task columns are NULL (or otherwise unusable) contributes the
// user only. A user with no tasks therefore yields an entry with an empty —
// never nil — task list. Rows carrying a user id not seen before simply
// start a new entry, whatever the id is; nothing here can reject a row, so
// malformed input degrades to extra entries rather than a failure.
func assembleUserTasks(rows []userTaskRow) []model.UserTasks {
	users := make([]model.UserTasks, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		// All three task columns must be present for the row to carry a
		// task; a partial set is treated as "user only", same as NULLs.
		var task *model.Task
		if row.taskID.Valid && row.taskName.Valid && row.taskDone.Valid {
			task = &model.Task{
				ID:        row.taskID.String,
				Name:      row.taskName.String,
				Completed: int(row.taskDone.Int64),
				UserID:    row.user.ID,
			}
		}

		pos, seen := index[row.user.ID]
		if !seen {
			entry := model.UserTasks{User: row.user, Tasks: []model.Task{}}
			if task != nil {
				entry.Tasks = append(entry.Tasks, *task)
			}
			index[row.user.ID] = len(users)
			users = append(users, entry)
			continue
		}

		if task != nil {
			users[pos].Tasks = append(users[pos].Tasks, *task)
		}
	}

	return users
}

// scanUserTaskRows drains a result set whose column order is
// (id, firstname, lastname, email, password, task_id, task_name, completed)
// into the flat row form the assembler consumes.
func scanUserTaskRows(rows *sql.Rows) ([]userTaskRow, error) {
	var out []userTaskRow
	for rows.Next() {
		var r userTaskRow
		if err := rows.Scan(
			&r.user.ID,
			&r.user.Firstname,
			&r.user.Lastname,
			&r.user.Email,
			&r.user.PasswordHash,
			&r.taskID,
			&r.taskName,
			&r.taskDone,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
