package school_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/storage/database/storetest"
)

func TestService_OverdueReminders(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	asha := storetest.CreateStudent(t, store, "STU001", "Asha", "Verma", "asha@school.test", "10-A", now)
	ravi := storetest.CreateStudent(t, store, "STU002", "Ravi", "Kumar", "ravi@school.test", "9-B", now)
	gone := storetest.CreateStudent(t, store, "STU003", "Meera", "Iyer", "meera@school.test", "9-B", now)

	ravi.GuardianName.SetValid("Mr. Kumar")
	_, _, err := store.UpdateStudent(ctx, ravi)
	require.NoError(t, err)

	storetest.CreateFee(t, store, ravi.ID, "900", "0", school.FeePending, now.AddDate(0, -1, 0))
	storetest.CreateFee(t, store, asha.ID, "1500", "500", school.FeePending, now.AddDate(0, 0, -3))
	storetest.CreateFee(t, store, asha.ID, "300", "0", school.FeePending, now.AddDate(0, 0, -1))
	storetest.CreateFee(t, store, asha.ID, "700", "0", school.FeePending, now.AddDate(0, 0, 1)) // not due yet
	storetest.CreateFee(t, store, gone.ID, "400", "0", school.FeePending, now.AddDate(0, 0, -1))
	_, err = store.DeleteStudent(ctx, gone.ID)
	require.NoError(t, err)

	messages, err := svc.OverdueReminders(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// one message per student, in fee order
	assert.Equal(t, "ravi@school.test", messages[0].To[0].Address)
	assert.Equal(t, "Ravi Kumar", messages[0].To[0].Name)
	assert.Equal(t, "asha@school.test", messages[1].To[0].Address)

	for _, msg := range messages {
		assert.Equal(t, "Fee payment reminder", msg.Subject)
		require.NoError(t, msg.Render())
	}

	assert.Contains(t, messages[0].TextContent, "Dear Mr. Kumar,")
	assert.Contains(t, messages[0].TextContent, "Total outstanding: 900.00")

	ashaMsg := messages[1]
	assert.Contains(t, ashaMsg.TextContent, "Dear Parent/Guardian,")
	assert.Contains(t, ashaMsg.TextContent, "Asha Verma (STU001)")
	assert.Contains(t, ashaMsg.TextContent, "Tuition (2024-25): 1000.00 due on 2024-06-12")
	assert.Contains(t, ashaMsg.TextContent, "Total outstanding: 1300.00")
	assert.NotContains(t, ashaMsg.TextContent, "700.00")
	assert.Contains(t, ashaMsg.HTMLContent, "<strong>Asha Verma</strong>")
}
