package grc

// hipaaCatalog contains the HIPAA Security Rule safeguards this tool
// recommends for scored risk scenarios
var hipaaCatalog = Catalog{
	Framework: FrameworkHIPAA,
	Version:   "Security Rule",
	Controls: []Control{
		{
			ID:          "ADMIN-RISK-MANAGEMENT",
			Name:        "Security management process",
			Description: "Conduct risk analysis and implement security measures sufficient to reduce risks to electronic PHI.",
			Domains:     []Domain{DomainAccessControl, DomainGeneral},
		},
		{
			ID:          "ADMIN-DATA-GOV",
			Name:        "Information access management",
			Description: "Implement policies for authorizing access to electronic PHI consistent with the minimum necessary standard.",
			Domains:     []Domain{DomainDataProtection},
		},
		{
			ID:          "ADMIN-SECURITY-INCIDENT",
			Name:        "Security incident procedures",
			Description: "Identify and respond to suspected or known security incidents, mitigate harmful effects, and document outcomes.",
			Domains:     []Domain{DomainLoggingMonitoring},
		},
		{
			ID:          "PHYS-DEVICE",
			Name:        "Device and media controls",
			Description: "Govern the receipt, removal, disposal, and re-use of hardware and electronic media containing electronic PHI.",
			Domains:     []Domain{DomainDeviceSecurity},
		},
		{
			ID:          "PHYS-WORKSTATION",
			Name:        "Workstation security",
			Description: "Implement physical safeguards for workstations that access electronic PHI to restrict access to authorized users.",
			Domains:     []Domain{DomainDeviceSecurity},
		},
		{
			ID:          "TECH-ACCESS",
			Name:        "Access control",
			Description: "Allow access to electronic PHI only to authorized persons, including unique user identification and emergency access procedures.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "TECH-AUDIT",
			Name:        "Audit controls",
			Description: "Implement mechanisms that record and examine activity in systems that contain or use electronic PHI.",
			Domains:     []Domain{DomainLoggingMonitoring},
		},
		{
			ID:          "TECH-INTEGRITY",
			Name:        "Integrity",
			Description: "Protect electronic PHI from improper alteration or destruction.",
			Domains:     []Domain{DomainNetworkSecurity},
		},
		{
			ID:          "TECH-TRANSMISSION",
			Name:        "Transmission security",
			Description: "Guard against unauthorized access to electronic PHI transmitted over an electronic communications network.",
			Domains:     []Domain{DomainNetworkSecurity},
		},
		{
			ID:          "TECH-ENCRYPTION",
			Name:        "Encryption and decryption",
			Description: "Implement a mechanism to encrypt and decrypt electronic PHI where reasonable and appropriate.",
			Domains:     []Domain{DomainDataProtection},
		},
	},
}
