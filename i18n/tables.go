package i18n

var english = map[string]string{
	"appName":               "Nevta Digital",
	"login":                 "Login",
	"register":              "Register",
	"logout":                "Logout",
	"mobileNumber":          "Mobile Number",
	"password":              "Password",
	"fullName":              "Full Name",
	"invalidMobile":         "Please enter a valid 10-digit mobile number",
	"passwordTooShort":      "Password must be at least 6 characters",
	"invalidCredentials":    "Invalid mobile number or password",
	"yourOccasions":         "Your Occasions",
	"newOccasion":           "New Occasion",
	"occasionName":          "Occasion Name",
	"eventDate":             "Event Date",
	"noEventsFound":         "No records found",
	"guestName":             "Guest Name",
	"guestNamePlaceholder":  "e.g. Mukesh Jain",
	"location":              "Location",
	"locationPlaceholder":   "e.g. Jodhpur",
	"amount":                "Amount (₹)",
	"date":                  "Date",
	"addEntry":              "Add Entry",
	"entrySaved":            "Entry Saved",
	"entryDeleted":          "Entry removed",
	"nameAmountRequired":    "Name and Amount are required!",
	"guestCount":            "Guest Count",
	"totalCollection":       "Total Collection",
	"search":                "Search name or place...",
	"delete":                "Delete",
	"cancel":                "Cancel",
	"deleteOccasionConfirm": "This will permanently delete the occasion and all its Nevta records.",
	"deleteEntryConfirm":    "This will permanently remove this entry.",
	"exportCsv":             "CSV",
	"exportPdf":             "PDF",
	"reportTitle":           "Nevta Report",
	"reportGeneratedBy":     "Report Generated by",
	"generatedOn":           "Generated on",
	"receiveUpiTitle":       "Receive via UPI",
	"upiDesc":               "Guests can scan this code to send Shagun directly.",
	"uploadQr":              "Upload QR",
	"qrUpdated":             "UPI QR code saved.",
	"insightsTitle":         "Munim ji's Insights",
	"insightsEmpty":         "No contributions recorded yet.",
	"summaryChartTitle":     "Top Occasions",
	"somethingWentWrong":    "Something went wrong. Please try again.",
	"invalidAmount":         "Amount must be a non-negative number",
	"invalidDate":           "Please enter a valid date",
	"amountTooLarge":       "Amount is too large",
	"textTooLong":          "Please keep names and locations under 255 characters",
	"occasionNameRequired":  "Occasion name and date are required",
	"nameRequired":          "Name is required",
	"mobileTaken":           "This mobile number is already registered",
	"totpRequired":          "Enter the 6-digit code from your authenticator app",
	"invalidTotp":           "Invalid 2FA code",
	"sessionExpired":        "Your session has expired, please log in again",
	"invalidImage":          "Please upload an image file",
	"imageTooLarge":         "Image is too large",
	"invalidVpa":            "Please enter a valid UPI ID",
	"notFound":              "Not found",
	"insightsUnavailable":   "Munim ji is unavailable right now",
	"invalidFormat":         "Unsupported report format",
	"invalidLanguage":       "Language must be English or Hindi",
}

var hindi = map[string]string{
	"appName":               "नेवता डिजिटल",
	"login":                 "लॉगिन",
	"register":              "रजिस्टर करें",
	"logout":                "लॉगआउट",
	"mobileNumber":          "मोबाइल नंबर",
	"password":              "पासवर्ड",
	"fullName":              "पूरा नाम",
	"invalidMobile":         "कृपया सही 10 अंकों का मोबाइल नंबर डालें",
	"passwordTooShort":      "पासवर्ड कम से कम 6 अक्षरों का होना चाहिए",
	"invalidCredentials":    "मोबाइल नंबर या पासवर्ड गलत है",
	"yourOccasions":         "आपके आयोजन",
	"newOccasion":           "नया आयोजन",
	"occasionName":          "आयोजन का नाम",
	"eventDate":             "आयोजन की तारीख",
	"noEventsFound":         "कोई रिकॉर्ड नहीं मिला",
	"guestName":             "मेहमान का नाम",
	"guestNamePlaceholder":  "जैसे मुकेश जैन",
	"location":              "स्थान",
	"locationPlaceholder":   "जैसे जोधपुर",
	"amount":                "राशि (₹)",
	"date":                  "तारीख",
	"addEntry":              "एंट्री जोड़ें",
	"entrySaved":            "एंट्री सेव हो गई",
	"entryDeleted":          "एंट्री हटा दी गई",
	"nameAmountRequired":    "नाम और राशि ज़रूरी हैं!",
	"guestCount":            "मेहमानों की संख्या",
	"totalCollection":       "कुल नेवता",
	"search":                "नाम या स्थान खोजें...",
	"delete":                "हटाएं",
	"cancel":                "रद्द करें",
	"deleteOccasionConfirm": "यह आयोजन और उसके सभी नेवता रिकॉर्ड हमेशा के लिए हट जाएंगे।",
	"deleteEntryConfirm":    "यह एंट्री हमेशा के लिए हट जाएगी।",
	"exportCsv":             "CSV",
	"exportPdf":             "PDF",
	"reportTitle":           "नेवता रिपोर्ट",
	"reportGeneratedBy":     "रिपोर्ट बनाई गई",
	"generatedOn":           "बनाने की तारीख",
	"receiveUpiTitle":       "UPI से प्राप्त करें",
	"upiDesc":               "मेहमान इस कोड को स्कैन करके सीधे शगुन भेज सकते हैं।",
	"uploadQr":              "QR अपलोड करें",
	"qrUpdated":             "UPI QR कोड सेव हो गया।",
	"insightsTitle":         "मुनीम जी की राय",
	"insightsEmpty":         "अभी तक कोई नेवता दर्ज नहीं हुआ है।",
	"summaryChartTitle":     "मुख्य आयोजन",
	"somethingWentWrong":    "कुछ गलत हो गया। कृपया फिर से कोशिश करें।",
	"invalidAmount":         "राशि शून्य या उससे अधिक संख्या होनी चाहिए",
	"invalidDate":           "कृपया सही तारीख डालें",
	"amountTooLarge":       "राशि बहुत बड़ी है",
	"textTooLong":          "नाम और जगह 255 अक्षरों से कम रखें",
	"occasionNameRequired":  "आयोजन का नाम और तारीख ज़रूरी हैं",
	"nameRequired":          "नाम ज़रूरी है",
	"mobileTaken":           "यह मोबाइल नंबर पहले से रजिस्टर है",
	"totpRequired":          "ऑथेंटिकेटर ऐप का 6 अंकों का कोड डालें",
	"invalidTotp":           "2FA कोड गलत है",
	"sessionExpired":        "आपका सत्र समाप्त हो गया है, कृपया फिर से लॉगिन करें",
	"invalidImage":          "कृपया एक इमेज फ़ाइल अपलोड करें",
	"imageTooLarge":         "इमेज बहुत बड़ी है",
	"invalidVpa":            "कृपया सही UPI ID डालें",
	"notFound":              "नहीं मिला",
	"insightsUnavailable":   "मुनीम जी अभी उपलब्ध नहीं हैं",
	"invalidFormat":         "यह रिपोर्ट फ़ॉर्मेट उपलब्ध नहीं है",
	"invalidLanguage":       "भाषा अंग्रेज़ी या हिंदी होनी चाहिए",
}
