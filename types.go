package soundpad

// Sound is one entry of the sound list. Fields mirror the attributes of a
// <Sound> element; Title and Tag are plain strings so entries named with
// digits only ("1234") keep their exact text.
type Sound struct {
	Index        int    `xml:"index,attr"`
	URL          string `xml:"url,attr"`
	Artist       string `xml:"artist,attr"`
	Title        string `xml:"title,attr"`
	Duration     string `xml:"duration,attr"`
	AddedOn      string `xml:"addedOn,attr"`
	LastPlayedOn string `xml:"lastPlayedOn,attr"`
	PlayCount    int    `xml:"playCount,attr"`
	Color        string `xml:"color,attr"`
	Tag          string `xml:"tag,attr"`
}

// Category is one node of the category tree. Subcategories nest without
// depth limit and are never nil after a decode; Sounds is nil when the
// listing was requested without sounds.
type Category struct {
	Index         int        `xml:"index,attr"`
	Type          string     `xml:"type,attr"`
	Name          string     `xml:"name,attr"`
	Hidden        bool       `xml:"hidden,attr"`
	Icon          string     `xml:"icon,attr"`
	Sounds        []Sound    `xml:"Sound"`
	Subcategories []Category `xml:"Category"`
}
