package attendstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"egovassist-backend/lib/telemetry"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestStore(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:attendstore")
	defer cleanup()

	sqlite, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	_, err = sqlite.Exec(Schema)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(sqlite)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		res, err := store.Pull(ctx, "unknown-student")
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, res, 0)
	}

	now := time.Now()
	{
		err := store.Push(ctx, Snapshot{
			Student:              "21dcs001",
			Time:                 now,
			OverallPercentage:    72.5,
			CalculatedPercentage: 71.4,
			GrossAttendance:      floatPtr(72.5),
			TotalPresent:         50,
			TotalClasses:         70,
			Subjects:             json.RawMessage(`[{"course_code":"CS101"}]`),
		})
		if err != nil {
			t.Fatal(err)
		}

		err = store.Push(ctx, Snapshot{
			Student:              "21dcs002",
			Time:                 now,
			OverallPercentage:    90,
			CalculatedPercentage: 90,
			TotalPresent:         45,
			TotalClasses:         50,
		})
		if err != nil {
			t.Fatal(err)
		}

		res, err := store.Pull(ctx, "21dcs001")
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, res, 1)
		require.Equal(t, "21dcs001", res[0].Student)
		require.Equal(t, 72.5, res[0].OverallPercentage)
		require.NotNil(t, res[0].GrossAttendance)
		require.Equal(t, 72.5, *res[0].GrossAttendance)
		require.JSONEq(t, `[{"course_code":"CS101"}]`, string(res[0].Subjects))
	}
	{
		// pushing again on the same day replaces the earlier row
		err := store.Push(ctx, Snapshot{
			Student:              "21dcs001",
			Time:                 now.Add(time.Minute),
			OverallPercentage:    73.1,
			CalculatedPercentage: 72.0,
			TotalPresent:         51,
			TotalClasses:         70,
		})
		if err != nil {
			t.Fatal(err)
		}

		res, err := store.Pull(ctx, "21dcs001")
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, res, 1)
		require.Equal(t, 73.1, res[0].OverallPercentage)
		require.Nil(t, res[0].GrossAttendance)
	}
	{
		// a push on a later day is kept alongside, ordered by time
		err := store.Push(ctx, Snapshot{
			Student:              "21dcs001",
			Time:                 now.Add(time.Hour * 24),
			OverallPercentage:    74.2,
			CalculatedPercentage: 74.2,
			TotalPresent:         55,
			TotalClasses:         74,
		})
		if err != nil {
			t.Fatal(err)
		}

		res, err := store.Pull(ctx, "21dcs001")
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, res, 2)
		require.Equal(t, 73.1, res[0].OverallPercentage)
		require.Equal(t, 74.2, res[1].OverallPercentage)

		other, err := store.Pull(ctx, "21dcs002")
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, other, 1)
	}
}
