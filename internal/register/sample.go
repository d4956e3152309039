package register

import "github.com/ethanolivertroy/riskmatrix-tui/internal/model"

// Sample returns a built-in healthcare risk register used when no
// register file is available, so the browser and the agent work out of
// the box. Callers should tell the user they are looking at sample
// data.
func Sample() *Table {
	return &Table{
		Source:  "built-in sample",
		Records: sampleRecords(),
	}
}

func sampleRecords() []model.RiskRecord {
	return []model.RiskRecord{
		{
			ID:             "R001",
			Asset:          "Infusion Pump Fleet",
			Threat:         "Malware introduced through unsecured USB maintenance port",
			Vulnerability:  "No USB port lockdown or device control policy",
			Probability:    4,
			Impact:         5,
			Decision:       model.DecisionReduce,
			Recommendation: "Disable unused ports and enforce signed firmware updates",
		},
		{
			ID:             "R002",
			Asset:          "EHR Database",
			Threat:         "Ransomware encrypts patient records",
			Vulnerability:  "Flat network allows lateral movement from office workstations",
			Probability:    3,
			Impact:         5,
			Decision:       model.DecisionReduce,
			Recommendation: "Segment clinical systems and test offline backups quarterly",
		},
		{
			ID:             "R003",
			Asset:          "Clinical Wi-Fi Network",
			Threat:         "Rogue access point intercepts telemetry traffic",
			Vulnerability:  "No wireless intrusion detection",
			Probability:    3,
			Impact:         4,
			Decision:       model.DecisionReduce,
			Recommendation: "Deploy WPA3-Enterprise and rogue AP monitoring",
		},
		{
			ID:             "R004",
			Asset:          "Nursing Station Workstations",
			Threat:         "Unauthorized access through shared login credentials",
			Vulnerability:  "Generic ward accounts with passwords on sticky notes",
			Probability:    4,
			Impact:         3,
			Decision:       model.DecisionReduce,
			Recommendation: "Roll out badge-tap authentication with per-user accounts",
		},
		{
			ID:             "R005",
			Asset:          "Bedside Monitors",
			Threat:         "Known vulnerability in outdated monitor firmware exploited",
			Vulnerability:  "Vendor firmware updates lag behind disclosures",
			Probability:    2,
			Impact:         4,
			Decision:       model.DecisionTransfer,
			Recommendation: "Shift patch liability to vendor under the support contract",
		},
		{
			ID:             "R006",
			Asset:          "Central Syslog Server",
			Threat:         "Intrusions go undetected because logging is disabled on devices",
			Vulnerability:  "Log forwarding never configured for biomedical VLAN",
			Probability:    2,
			Impact:         3,
			Decision:       model.DecisionReduce,
			Recommendation: "Forward device logs to the SIEM and alert on gaps",
		},
		{
			ID:             "R007",
			Asset:          "Backup Storage Array",
			Threat:         "Stolen backup media leaks PHI",
			Vulnerability:  "Backups written unencrypted to removable disks",
			Probability:    2,
			Impact:         5,
			Decision:       model.DecisionReduce,
			Recommendation: "Encrypt backup sets and move to locked media storage",
		},
		{
			ID:             "R008",
			Asset:          "Lobby Information Kiosk",
			Threat:         "Defacement of the public visitor display",
			Vulnerability:  "Kiosk browser not locked to the welcome page",
			Probability:    1,
			Impact:         1,
			Decision:       model.DecisionAccept,
			Recommendation: "",
		},
		{
			ID:             "R009",
			Asset:          "Remote Access VPN",
			Threat:         "Credential stuffing against clinician remote accounts",
			Vulnerability:  "No MFA on the VPN portal",
			Probability:    3,
			Impact:         3,
			Decision:       model.DecisionReduce,
			Recommendation: "Require MFA for all remote access",
		},
		{
			ID:             "R010",
			Asset:          "Legacy Telemetry Gateway",
			Threat:         "Unsupported operating system compromised and used as a foothold",
			Vulnerability:  "OS past end-of-life, no patches available",
			Probability:    3,
			Impact:         4,
			Decision:       model.DecisionAvoid,
			Recommendation: "Decommission and replace with the supported gateway model",
		},
		{
			ID:             "R011",
			Asset:          "Cloud EHR Vendor",
			Threat:         "Breach at the hosting vendor exposes patient data",
			Vulnerability:  "Single vendor holds the full record set",
			Probability:    2,
			Impact:         4,
			Decision:       model.DecisionTransfer,
			Recommendation: "Cyber liability coverage and contractual breach penalties",
		},
		{
			ID:             "R012",
			Asset:          "Ward Label Printer",
			Threat:         "Printer outage delays specimen labeling",
			Vulnerability:  "Single printer per ward, no spare",
			Probability:    2,
			Impact:         1,
			Decision:       model.DecisionAccept,
			Recommendation: "",
		},
	}
}
