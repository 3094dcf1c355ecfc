package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MediBoard/MediBoard/internal/db/dbtest"
	"github.com/MediBoard/MediBoard/internal/db/models"
)

func TestGroupedAndOnLeave(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	doctors := []models.Doctor{
		{Name: "Dr. Budi", Specialty: "Cardiology"},
		{Name: "Dr. Ani", Specialty: "Pediatrics"},
		{Name: "Dr. Citra", Specialty: "Cardiology"},
	}
	require.NoError(t, db.Create(&doctors).Error)

	require.NoError(t, db.Create(&models.Leave{
		DoctorID:  doctors[0].ID,
		StartDate: "2026-04-01",
		EndDate:   "2026-04-03",
	}).Error)

	groups, err := Grouped(ctx, db)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cardiology", groups[0].Specialty)
	assert.Len(t, groups[0].Doctors, 2)
	assert.Equal(t, "Dr. Budi", groups[0].Doctors[0].Name)
	assert.Equal(t, "Pediatrics", groups[1].Specialty)

	testCases := []struct {
		date  string
		names []string
	}{
		{date: "2026-03-31", names: []string{}},
		{date: "2026-04-01", names: []string{"Dr. Budi"}},
		{date: "2026-04-03", names: []string{"Dr. Budi"}},
		{date: "2026-04-04", names: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.date, func(t *testing.T) {
			onLeave, err := OnLeave(ctx, db, tc.date)
			require.NoError(t, err)

			names := []string{}
			for _, d := range onLeave {
				names = append(names, d.Name)
			}

			assert.Equal(t, tc.names, names)
		})
	}
}

func TestGroupedEmpty(t *testing.T) {
	groups, err := Grouped(context.Background(), dbtest.Open(t))
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
