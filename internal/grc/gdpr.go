package grc

// gdprCatalog contains the GDPR security-of-processing measures this
// tool recommends for scored risk scenarios
var gdprCatalog = Catalog{
	Framework: FrameworkGDPR,
	Version:   "2016/679",
	Controls: []Control{
		{
			ID:          "ART25-1",
			Name:        "Data protection by design and by default",
			Description: "Implement appropriate technical and organisational measures designed to implement data-protection principles at the time of processing.",
			Domains:     []Domain{DomainDataProtection, DomainGeneral},
		},
		{
			ID:          "ART30-1",
			Name:        "Records of processing activities",
			Description: "Maintain a record of processing activities, including purposes, categories of data, and the envisaged retention periods.",
			Domains:     []Domain{DomainLoggingMonitoring},
		},
		{
			ID:          "ART32-1",
			Name:        "Security of processing",
			Description: "Implement technical and organisational measures appropriate to the risk of the processing.",
			Domains:     []Domain{DomainGeneral},
		},
		{
			ID:          "ART32-1A",
			Name:        "Pseudonymisation and encryption",
			Description: "Apply pseudonymisation and encryption of personal data where appropriate to the risk.",
			Domains:     []Domain{DomainDataProtection},
		},
		{
			ID:          "ART32-1B",
			Name:        "Confidentiality, integrity, availability and resilience",
			Description: "Ensure the ongoing confidentiality, integrity, availability, and resilience of processing systems and services.",
			Domains:     []Domain{DomainAccessControl, DomainDeviceSecurity},
		},
		{
			ID:          "ART32-1C",
			Name:        "Restore availability and access",
			Description: "Restore the availability of and access to personal data in a timely manner after a physical or technical incident.",
			Domains:     []Domain{DomainDataProtection},
		},
		{
			ID:          "ART32-1D",
			Name:        "Regular testing and evaluation",
			Description: "Regularly test, assess, and evaluate the effectiveness of technical and organisational security measures.",
			Domains:     []Domain{DomainNetworkSecurity, DomainLoggingMonitoring},
		},
	},
}
