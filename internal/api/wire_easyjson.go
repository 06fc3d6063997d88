package api

import (
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
)

var (
	_ easyjson.Unmarshaler = (*StatusResponse)(nil)
	_ easyjson.Unmarshaler = (*HeartbeatResponse)(nil)
	_ easyjson.Unmarshaler = (*ConfigResponse)(nil)
)

func decodeSample(in *jlexer.Lexer, out *SampleJSON) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "timestamp":
			out.Timestamp = in.String()
		case "is_up":
			if out.IsUp == nil {
				out.IsUp = new(bool)
			}
			*out.IsUp = in.Bool()
		case "status_code":
			if out.StatusCode == nil {
				out.StatusCode = new(int)
			}
			*out.StatusCode = in.Int()
		case "response_time":
			if out.ResponseTime == nil {
				out.ResponseTime = new(float64)
			}
			*out.ResponseTime = in.Float64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func decodeSamples(in *jlexer.Lexer) []SampleJSON {
	if in.IsNull() {
		in.Skip()
		return nil
	}
	in.Delim('[')
	out := make([]SampleJSON, 0, 16)
	for !in.IsDelim(']') {
		var s SampleJSON
		decodeSample(in, &s)
		out = append(out, s)
		in.WantComma()
	}
	in.Delim(']')
	return out
}

func decodeMonitor(in *jlexer.Lexer, out *MonitorJSON) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "name":
			out.Name = in.String()
		case "url":
			out.URL = in.String()
		case "current_status":
			if out.CurrentStatus == nil {
				out.CurrentStatus = new(SampleJSON)
			}
			decodeSample(in, out.CurrentStatus)
		case "history":
			out.History = decodeSamples(in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *StatusResponse) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "timestamp":
			v.Timestamp = in.String()
		case "monitors":
			in.Delim('[')
			v.Monitors = make([]MonitorJSON, 0, 4)
			for !in.IsDelim(']') {
				var m MonitorJSON
				decodeMonitor(in, &m)
				v.Monitors = append(v.Monitors, m)
				in.WantComma()
			}
			in.Delim(']')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *StatusResponse) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	v.UnmarshalEasyJSON(&r)
	return r.Error()
}

func decodeBucket(in *jlexer.Lexer, out *BucketJSON) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "timestamp":
			out.Timestamp = in.String()
		case "count":
			out.Count = in.Int()
		case "avg_response_time":
			if out.AvgResponseTime == nil {
				out.AvgResponseTime = new(float64)
			}
			*out.AvgResponseTime = in.Float64()
		case "degraded_count":
			out.DegradedCount = in.Int()
		case "down_count":
			out.DownCount = in.Int()
		case "issue_percentage":
			out.IssuePercentage = in.Float64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *HeartbeatResponse) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "monitor_name":
			v.MonitorName = in.String()
		case "interval":
			v.Interval = in.String()
		case "heartbeat":
			in.Delim('[')
			v.Heartbeat = make([]BucketJSON, 0, 32)
			for !in.IsDelim(']') {
				var b BucketJSON
				decodeBucket(in, &b)
				v.Heartbeat = append(v.Heartbeat, b)
				in.WantComma()
			}
			in.Delim(']')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *HeartbeatResponse) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	v.UnmarshalEasyJSON(&r)
	return r.Error()
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *ConfigResponse) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "degraded_threshold_ms":
			if v.DegradedThresholdMs == nil {
				v.DegradedThresholdMs = new(float64)
			}
			*v.DegradedThresholdMs = in.Float64()
		case "degraded_percentage_threshold":
			if v.DegradedPercentageThreshold == nil {
				v.DegradedPercentageThreshold = new(float64)
			}
			*v.DegradedPercentageThreshold = in.Float64()
		case "footer_text":
			v.FooterText = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *ConfigResponse) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	v.UnmarshalEasyJSON(&r)
	return r.Error()
}
