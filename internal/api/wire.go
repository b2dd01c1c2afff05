package api

import "time"

// The backend has shipped two host shapes. Schema v1 carries a flat
// latestStatus map of status strings. Schema v2 carries latestChecks (the most
// recent check per bucket) plus a checkUptime tree. Detail responses of either
// version add the full checks history.

type wireCheck struct {
	ID                string    `json:"id"`
	Status            string    `json:"status"`
	ResponseTime      int64     `json:"responseTime"` // nanoseconds
	StatusCode        int       `json:"statusCode"`
	CheckErrorMessage string    `json:"checkErrorMessage"`
	CheckedAt         time.Time `json:"checkedAt"`
}

type wireCheckTypes struct {
	HTTP []wireCheck `json:"http"`
	ICMP []wireCheck `json:"icmp"`
	TCP  []wireCheck `json:"tcp"`
	UDP  []wireCheck `json:"udp"`
}

type wireServiceChecks struct {
	Public   wireCheckTypes `json:"public"`
	Internal wireCheckTypes `json:"internal"`
}

type wireStatusTypes struct {
	HTTP string `json:"http"`
	ICMP string `json:"icmp"`
	TCP  string `json:"tcp"`
	UDP  string `json:"udp"`
}

type wireLatestStatus struct {
	Public   wireStatusTypes `json:"public"`
	Internal wireStatusTypes `json:"internal"`
}

// Percent is a pointer so an absent figure is not mistaken for 0%.
type wireUptime struct {
	Percent      *float64 `json:"percent"`
	TotalSuccess uint64   `json:"totalSuccess"`
	TotalChecks  uint64   `json:"totalChecks"`
}

type wireNetworkUptime struct {
	wireUptime
	HTTP *wireUptime `json:"http"`
	ICMP *wireUptime `json:"icmp"`
	TCP  *wireUptime `json:"tcp"`
	UDP  *wireUptime `json:"udp"`
}

type wireCheckUptime struct {
	wireUptime
	Public   *wireNetworkUptime `json:"public"`
	Internal *wireNetworkUptime `json:"internal"`
}

type wireHost struct {
	ID                string        `json:"id"`
	Hostname          string        `json:"hostname"`
	PublicIP          string        `json:"publicIp"`
	InternalIP        string        `json:"internalIp"`
	ServiceRestarts   int           `json:"serviceRestarts"`
	ServiceFirstStart time.Time     `json:"serviceFirstStart"`
	ServiceLastStart  time.Time     `json:"serviceLastStart"`
	ServiceUptime     time.Duration `json:"serviceUptime"`
	HostUptime        time.Duration `json:"hostUptime"`
	FirstSeenAt       time.Time     `json:"firstSeenAt"`
	LastSeenAt        time.Time     `json:"lastSeenAt"`

	LatestStatus *wireLatestStatus  `json:"latestStatus"`
	LatestChecks *wireServiceChecks `json:"latestChecks"`
	Checks       *wireServiceChecks `json:"checks"`
	CheckUptime  *wireCheckUptime   `json:"checkUptime"`
}
