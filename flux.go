/*
Copyright © 2026 the fluxrs authors.
This file is part of fluxrs.

fluxrs is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

fluxrs is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with fluxrs.  If not, see <http://www.gnu.org/licenses/>.
*/

package fluxrs

// GasConstantR is the ideal gas constant, J/(mol*K).
const GasConstantR = 8.314

// NativeSlopeToPPMPerSecond converts a regression slope expressed in an
// instrument's native reporting unit (ppm or ppb) per second into ppm of
// dry mole fraction per second.
func NativeSlopeToPPMPerSecond(nativeSlopePerS float64, g GasType) float64 {
	return nativeSlopePerS / g.ConvFactor()
}

// FluxUmolM2S converts a fitted slope (ppm dry-mole-fraction per second)
// into a molar flux in micromoles per square meter per second, given the
// cycle's air temperature (deg C), pressure (hPa) and chamber geometry
// snapshot. A chamber with zero effective height yields a zero flux.
func FluxUmolM2S(slopePpmPerS, airTemperatureC, airPressureHPa float64, chamber Chamber) float64 {
	pPa := airPressureHPa * 100.0
	tK := airTemperatureC + 273.15

	molPerM3Air := pPa / (GasConstantR * tK)
	slopeMolPerMolPerS := slopePpmPerS * 1e-6
	dMolPerM3PerS := slopeMolPerMolPerS * molPerM3Air

	volumeM3 := chamber.VolumeM3()
	areaM2 := chamber.AreaM2()
	if areaM2 == 0 {
		return 0
	}

	fluxMolM2S := dMolPerM3PerS * volumeM3 / areaM2
	return fluxMolM2S * 1e6
}

// FluxMgM2S converts a µmol*m^-2*s^-1 flux to mg*m^-2*s^-1 using the gas's
// molar mass.
func FluxMgM2S(fluxUmolM2S float64, g GasType) float64 {
	return fluxUmolM2S * g.MolarMass() * 1e-3
}

// FluxMgM2H converts a mg*m^-2*s^-1 flux to mg*m^-2*h^-1.
func FluxMgM2H(fluxMgM2S float64) float64 {
	return fluxMgM2S * 3600
}

// FluxNmolM2S converts a µmol*m^-2*s^-1 flux to nmol*m^-2*s^-1.
func FluxNmolM2S(fluxUmolM2S float64) float64 {
	return fluxUmolM2S * 1000
}

// FluxMmolM2S converts a µmol*m^-2*s^-1 flux to mmol*m^-2*s^-1.
func FluxMmolM2S(fluxUmolM2S float64) float64 {
	return fluxUmolM2S / 1000
}
