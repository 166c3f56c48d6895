package reconcile

import "github.com/jonathan/vendor-profiler/internal/types"

// fallbackKeywords is the static keyword table used when the canonical
// catalog cannot be read. Keywords are lowercase; matching is bidirectional
// substring containment against the lowercased entry.
var fallbackKeywords = map[string][]string{
	types.CategoryEHRs: {
		"epic",
		"cerner",
		"oracle health",
		"athena",
		"athenahealth",
		"allscripts",
		"veradigm",
		"eclinicalworks",
		"meditech",
		"nextgen",
		"drchrono",
		"kareo",
		"practice fusion",
		"greenway",
	},
	types.CategoryPayments: {
		"stripe",
		"square",
		"paypal",
		"braintree",
		"adyen",
		"authorize.net",
		"worldpay",
		"payments",
	},
	types.CategoryForms: {
		"jotform",
		"typeform",
		"google forms",
		"formstack",
		"docusign",
		"gravity forms",
		"forms",
	},
	types.CategoryCommunication: {
		"twilio",
		"sendgrid",
		"mailchimp",
		"slack",
		"intercom",
		"zoom",
		"ringcentral",
		"dialpad",
		"sms",
	},
	types.CategoryAnalytics: {
		"google analytics",
		"mixpanel",
		"segment",
		"amplitude",
		"tableau",
		"looker",
		"power bi",
		"analytics",
	},
}
