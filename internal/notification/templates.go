package notification

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var leaveSubjects = map[string]string{
	"MANAGER_APPROVED": "Leave Approved by Manager",
	"MANAGER_REJECTED": "Leave Rejected by Manager",
	"HR_APPROVED":      "Leave Approved by HR",
	"HR_REJECTED":      "Leave Rejected by HR",
}

var claimSubjects = map[string]string{
	"MANAGER_APPROVED": "Change Off Claim Approved by Manager",
	"MANAGER_REJECTED": "Change Off Claim Rejected by Manager",
	"HR_APPROVED":      "Change Off Claim Approved by HR",
	"HR_REJECTED":      "Change Off Claim Rejected by HR",
}

func LeaveStatusMessage(empName, leaveType, status, reason string) (subject, body string) {
	subject, ok := leaveSubjects[status]
	if !ok {
		subject = "Leave Notification"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Halo %s,\n\n", empName)
	fmt.Fprintf(&b, "Status pengajuan cuti Anda:\n\n")
	fmt.Fprintf(&b, "  Tipe  : %s\n", leaveType)
	fmt.Fprintf(&b, "  Status: %s\n\n", humanizeStatus(status))
	if reason != "" {
		fmt.Fprintf(&b, "Catatan:\n%s\n\n", reason)
	}
	b.WriteString(footer)
	return subject, b.String()
}

func ClaimStatusMessage(empName, workDate string, dayValue float64, status, reason string) (subject, body string) {
	subject, ok := claimSubjects[status]
	if !ok {
		subject = "Change Off Notification"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Halo %s,\n\n", empName)
	fmt.Fprintf(&b, "Status klaim Change Off Anda:\n\n")
	fmt.Fprintf(&b, "  Tanggal kerja: %s\n", workDate)
	fmt.Fprintf(&b, "  Nilai        : %.1f hari\n", dayValue)
	fmt.Fprintf(&b, "  Status       : %s\n\n", humanizeStatus(status))
	if reason != "" {
		fmt.Fprintf(&b, "Catatan:\n%s\n\n", reason)
	}
	b.WriteString(footer)
	return subject, b.String()
}

const footer = "Email ini dikirim otomatis oleh HR System.\nMohon tidak membalas."

func humanizeStatus(status string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(strings.ReplaceAll(status, "_", " ")))
}
