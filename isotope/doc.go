// Package isotope implements the isotope pattern analyzer: extracting
// isotope clusters from an MS1 spectrum, simulating each candidate
// formula's theoretical distribution, and scoring measured-against-
// simulated via a Gaussian model on mass and a log-normal model on
// relative intensity.
package isotope
