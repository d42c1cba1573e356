// Package content defines site descriptors (the wire form callers submit) and the validated,
// immutable site model the generator renders.
//
// A descriptor is decoded from JSON or YAML, checked by Validate and converted by NewSite into a
// Site whose sections are a closed set of typed variants (Hero, Skills, Form, Text, Image,
// Contact, About). Only NewSite produces a Site, so every Site in the program has passed
// validation.
package content
