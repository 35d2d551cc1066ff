package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"membership-recon/internal/parser"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)
	return path
}

func TestRosterCSVParser_Parse(t *testing.T) {
	path := writeCSV(t, "members.csv", `StudentID,FullName,Team,IsSelectedOfficialTeam
1,Jon Tan,Badminton,Yes
2,Casual Chan,Badminton,No
3,Mary Lim,Squash,yes
`)

	members, err := parser.NewRosterCSVParser().Parse(path)

	assert.NoError(t, err)
	assert.Len(t, members, 3)
	assert.Equal(t, "1", members[0].StudentID)
	assert.True(t, members[0].Selected)
	assert.False(t, members[1].Selected)
	// only the exact string "Yes" marks selection
	assert.False(t, members[2].Selected)
}

func TestRosterCSVParser_HeadersAreCaseInsensitive(t *testing.T) {
	path := writeCSV(t, "members.csv", `studentid,FULLNAME,team,isselectedofficialteam
1,Jon Tan,Badminton,Yes
`)

	members, err := parser.NewRosterCSVParser().Parse(path)

	assert.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, "Jon Tan", members[0].FullName)
}

func TestRosterCSVParser_MissingColumn(t *testing.T) {
	path := writeCSV(t, "members.csv", `StudentID,FullName
1,Jon Tan
`)

	_, err := parser.NewRosterCSVParser().Parse(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestPaymentsCSVParser_Parse(t *testing.T) {
	path := writeCSV(t, "payments.csv", `StudentID,FullName,Amount,PaymentDate
1,Jon Tan,50.00,2024-09-01
,John Tann,80,2024-09-15
`)

	payments, err := parser.NewPaymentsCSVParser().Parse(path)

	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, "1", payments[0].StudentID)
	assert.True(t, payments[0].Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "", payments[1].StudentID, "missing identifier stays empty")
	assert.Equal(t, "2024-09-15", payments[1].PaymentDate)
}

func TestPaymentsCSVParser_IdentifierColumnOptional(t *testing.T) {
	path := writeCSV(t, "payments.csv", `FullName,Amount,PaymentDate
Jon Tan,120,2024-09-01
`)

	payments, err := parser.NewPaymentsCSVParser().Parse(path)

	assert.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, "", payments[0].StudentID)
}

func TestPaymentsCSVParser_SkipsInvalidRows(t *testing.T) {
	path := writeCSV(t, "payments.csv", `StudentID,FullName,Amount,PaymentDate
1,Jon Tan,50.00,2024-09-01
2,Bad Amount,not-a-number,2024-09-02
3,Mary Lim,70.00,2024-09-03
`)

	payments, err := parser.NewPaymentsCSVParser().Parse(path)

	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, "Mary Lim", payments[1].FullName)
}

func TestPaymentsCSVParser_MissingAmountColumn(t *testing.T) {
	path := writeCSV(t, "payments.csv", `StudentID,FullName,PaymentDate
1,Jon Tan,2024-09-01
`)

	_, err := parser.NewPaymentsCSVParser().Parse(path)
	assert.Error(t, err)
}

func TestBookingsCSVParser_Parse(t *testing.T) {
	path := writeCSV(t, "bookings.csv", `BookingID,FullName,BookingStart,Hours,AmountPaid
B1,External Hirer,2024-09-01 18:00,3,10.00
B2,Another Hirer,2024-09-02 19:00,1.5,7.50
`)

	bookings, err := parser.NewBookingsCSVParser().Parse(path)

	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.Equal(t, "B1", bookings[0].BookingID)
	assert.Equal(t, "2024-09-01 18:00", bookings[0].BookingStart)
	assert.True(t, bookings[1].Hours.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, bookings[1].AmountPaid.Equal(decimal.NewFromFloat(7.5)))
}

func TestBookingsCSVParser_MissingFile(t *testing.T) {
	_, err := parser.NewBookingsCSVParser().Parse(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
