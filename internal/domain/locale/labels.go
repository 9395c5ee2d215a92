package locale

// Label returns the display text for key in l, or key itself when unknown.
// Keys are namespaced, e.g. "stage.new" or "step.review".
func (l Locale) Label(key string) string {
	if t, ok := labels[l.Code][key]; ok {
		return t
	}
	if t, ok := labels[English.Code][key]; ok {
		return t
	}
	return key
}

// Labels returns a copy of every label for l.
func (l Locale) Labels() map[string]string {
	out := make(map[string]string, len(labels[English.Code]))
	for k := range labels[English.Code] {
		out[k] = l.Label(k)
	}
	return out
}

var labels = map[string]map[string]string{
	"en": {
		"stage.new":         "New",
		"stage.shortlisted": "Shortlisted",
		"stage.interviewed": "Interviewed",
		"stage.offered":     "Offered",
		"stage.hired":       "Hired",
		"stage.rejected":    "Rejected",

		"source.linkedin": "LinkedIn",
		"source.portal":   "Careers Portal",
		"source.referral": "Referral",
		"source.other":    "Other",

		"step.basic":      "Basic Information",
		"step.resume":     "Resume",
		"step.additional": "Additional Information",
		"step.review":     "Review",
		"step.success":    "Application Submitted",

		"interview.phone":  "Phone",
		"interview.video":  "Video",
		"interview.onsite": "On-site",

		"offer.draft":            "Draft",
		"offer.pending_approval": "Pending Approval",
		"offer.approved":         "Approved",
		"offer.sent":             "Sent",
		"offer.accepted":         "Accepted",
		"offer.declined":         "Declined",
		"offer.withdrawn":        "Withdrawn",

		"export.sheet.candidates": "Candidates",
		"export.sheet.summary":    "Summary",
		"export.col.name":         "Name",
		"export.col.email":        "Email",
		"export.col.title":        "Job Title",
		"export.col.stage":        "Stage",
		"export.col.source":       "Source",
		"export.col.aiScore":      "AI Score",
		"export.col.appliedAt":    "Applied",
		"export.col.count":        "Count",

		"portal.openPositions": "Open positions",
		"portal.apply":         "Apply now",
		"portal.noJobs":        "No open positions right now.",
		"portal.settingsSaved": "Settings saved",
	},
	"ar": {
		"stage.new":         "جديد",
		"stage.shortlisted": "القائمة المختصرة",
		"stage.interviewed": "تمت المقابلة",
		"stage.offered":     "تم تقديم عرض",
		"stage.hired":       "تم التوظيف",
		"stage.rejected":    "مرفوض",

		"source.linkedin": "لينكدإن",
		"source.portal":   "بوابة الوظائف",
		"source.referral": "إحالة",
		"source.other":    "أخرى",

		"step.basic":      "المعلومات الأساسية",
		"step.resume":     "السيرة الذاتية",
		"step.additional": "معلومات إضافية",
		"step.review":     "المراجعة",
		"step.success":    "تم إرسال الطلب",

		"interview.phone":  "هاتفية",
		"interview.video":  "فيديو",
		"interview.onsite": "حضورية",

		"offer.draft":            "مسودة",
		"offer.pending_approval": "بانتظار الموافقة",
		"offer.approved":         "معتمد",
		"offer.sent":             "مرسل",
		"offer.accepted":         "مقبول",
		"offer.declined":         "مرفوض",
		"offer.withdrawn":        "مسحوب",

		"export.sheet.candidates": "المرشحون",
		"export.sheet.summary":    "الملخص",
		"export.col.name":         "الاسم",
		"export.col.email":        "البريد الإلكتروني",
		"export.col.title":        "المسمى الوظيفي",
		"export.col.stage":        "المرحلة",
		"export.col.source":       "المصدر",
		"export.col.aiScore":      "تقييم الذكاء الاصطناعي",
		"export.col.appliedAt":    "تاريخ التقديم",
		"export.col.count":        "العدد",

		"portal.openPositions": "الوظائف المتاحة",
		"portal.apply":         "قدّم الآن",
		"portal.noJobs":        "لا توجد وظائف متاحة حالياً.",
		"portal.settingsSaved": "تم حفظ الإعدادات",
	},
}
