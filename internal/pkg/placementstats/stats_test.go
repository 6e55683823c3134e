package placementstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 75.0, Percentage(60, 80))
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(7, 7))
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 42, ParseCount("42"))
	assert.Equal(t, 42, ParseCount(" 42 "))
	assert.Equal(t, 0, ParseCount("abc"))
	assert.Equal(t, 0, ParseCount(""))
	assert.Equal(t, 0, ParseCount("4.5"))
}

func TestApply(t *testing.T) {
	d := DepartmentStat{Name: "CSE", TotalStudents: 100, InterestedForJob: 80, StudentsPlaced: 60, PlacementPercentage: 75}

	t.Run("rejects interested above total", func(t *testing.T) {
		got, msg, ok := Apply(d, FieldInterestedForJob, 150)
		assert.False(t, ok)
		assert.Equal(t, MsgExceedsTotal, msg)
		assert.Equal(t, d, got)
	})

	t.Run("rejects placed above interested", func(t *testing.T) {
		got, msg, ok := Apply(d, FieldStudentsPlaced, 81)
		assert.False(t, ok)
		assert.Equal(t, MsgExceedsInterested, msg)
		assert.Equal(t, d, got)
	})

	t.Run("rejects interested below placed", func(t *testing.T) {
		got, msg, ok := Apply(d, FieldInterestedForJob, 10)
		assert.False(t, ok)
		assert.Equal(t, MsgBelowPlaced, msg)
		assert.Equal(t, d, got)
	})

	t.Run("rejects total below interested", func(t *testing.T) {
		got, msg, ok := Apply(d, FieldTotalStudents, 5)
		assert.False(t, ok)
		assert.Equal(t, MsgBelowInterested, msg)
		assert.Equal(t, d, got)
	})

	t.Run("rejects negative counts", func(t *testing.T) {
		for _, field := range []string{FieldTotalStudents, FieldInterestedForJob, FieldStudentsPlaced} {
			got, msg, ok := Apply(d, field, -3)
			assert.False(t, ok, field)
			assert.Equal(t, MsgNegative, msg)
			assert.Equal(t, d, got)
		}
	})

	t.Run("lowers in dependency order", func(t *testing.T) {
		got, _, ok := Apply(d, FieldStudentsPlaced, 5)
		require.True(t, ok)
		got, _, ok = Apply(got, FieldInterestedForJob, 10)
		require.True(t, ok)
		got, _, ok = Apply(got, FieldTotalStudents, 20)
		require.True(t, ok)
		assert.Equal(t, DepartmentStat{Name: "CSE", TotalStudents: 20, InterestedForJob: 10, StudentsPlaced: 5, PlacementPercentage: 50}, got)
	})

	t.Run("commits and recomputes", func(t *testing.T) {
		got, msg, ok := Apply(d, FieldStudentsPlaced, 40)
		require.True(t, ok)
		assert.Empty(t, msg)
		assert.Equal(t, 40, got.StudentsPlaced)
		assert.Equal(t, 50.0, got.PlacementPercentage)
	})

	t.Run("interested to zero zeroes percentage", func(t *testing.T) {
		empty := DepartmentStat{Name: "IT", TotalStudents: 10}
		got, _, ok := Apply(empty, FieldInterestedForJob, 0)
		require.True(t, ok)
		assert.Equal(t, 0.0, got.PlacementPercentage)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, _, ok := Apply(d, "placementPercentage", 10)
		assert.False(t, ok)
	})
}

func TestAssign(t *testing.T) {
	d := DepartmentStat{Name: "CSE", TotalStudents: 100, InterestedForJob: 80, StudentsPlaced: 60, PlacementPercentage: 75}

	got, errs := Assign(d, 20, 10, 5)
	assert.Empty(t, errs)
	assert.Equal(t, 50.0, got.PlacementPercentage)
	assert.Equal(t, "CSE", got.Name)

	got, errs = Assign(d, 5, 10, 60)
	assert.Equal(t, d, got)
	assert.Equal(t, MsgExceedsTotal, errs["CSE-interestedForJob"])
	assert.Equal(t, MsgExceedsInterested, errs["CSE-studentsPlaced"])

	_, errs = Assign(d, 10, 5, -1)
	assert.Equal(t, MsgNegative, errs["CSE-totalStudents"])
}

func TestSum_DerivesFromSums(t *testing.T) {
	depts := []DepartmentStat{
		{Name: "CSE", TotalStudents: 100, InterestedForJob: 10, StudentsPlaced: 9},
		{Name: "ME", TotalStudents: 200, InterestedForJob: 190, StudentsPlaced: 19},
	}

	total := Sum(depts)
	assert.Equal(t, 300, total.TotalStudents)
	assert.Equal(t, 200, total.InterestedForJob)
	assert.Equal(t, 28, total.StudentsPlaced)
	// 28/200, not the mean of 90% and 10%
	assert.Equal(t, 14.0, total.PlacementPercentage)

	assert.Equal(t, total, Sum(depts))
}

func TestValidate(t *testing.T) {
	valid := []DepartmentStat{{Name: "CSE", TotalStudents: 100, InterestedForJob: 80, StudentsPlaced: 60}}

	assert.Empty(t, Validate("2024-2025", 10, valid))

	errs := Validate("", 0, EmptyDepartments())
	assert.Equal(t, MsgYearRequired, errs[KeyYear])
	assert.Equal(t, MsgCompanies, errs[KeyNoOfCompanies])
	assert.Equal(t, MsgNoDepartmentData, errs[KeyDepartments])

	assert.Equal(t, MsgYearFormat, Validate("2024/25", 1, valid)[KeyYear])
	assert.Equal(t, MsgYearFormat, Validate("2024-2026", 1, valid)[KeyYear])

	bad := []DepartmentStat{{Name: "EE", TotalStudents: 10, InterestedForJob: 20, StudentsPlaced: 30}}
	errs = Validate("2024-2025", 1, bad)
	assert.Equal(t, MsgExceedsTotal, errs["EE-interestedForJob"])
	assert.Equal(t, MsgExceedsInterested, errs["EE-studentsPlaced"])

	errs = Validate("2024-2025", 1, []DepartmentStat{{Name: "BIO", TotalStudents: 1}})
	assert.Equal(t, MsgUnknownDepartment, errs["BIO-name"])
}

func TestMerge(t *testing.T) {
	merged := Merge([]DepartmentStat{{Name: "IT", TotalStudents: 50, InterestedForJob: 40, StudentsPlaced: 10}})

	require.Len(t, merged, len(Departments))
	assert.Equal(t, "CE", merged[0].Name)
	assert.Equal(t, "IT", merged[2].Name)
	assert.Equal(t, 25.0, merged[2].PlacementPercentage)
	assert.False(t, merged[1].HasData())
}
